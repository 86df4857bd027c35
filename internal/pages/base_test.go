package pages

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"go-bdjobs-e2e/internal/browser"
	"go-bdjobs-e2e/internal/locator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const origin = "http://portal.test"

func newBase(t *testing.T) (BasePage, *mockSession, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	s := &mockSession{}
	t.Cleanup(func() { s.AssertExpectations(t) })
	base := NewBasePage(s, Options{
		Origin:         origin + "/",
		ScreenshotsDir: "shots",
		LoadTimeout:    5 * time.Second,
		ActionTimeout:  2 * time.Second,
		Logger:         zap.New(core),
	})
	return base, s, logs
}

func timeoutErr() error {
	return fmt.Errorf("locator.click: %w", browser.ErrTimeout)
}

func TestBasePage_ResolveURL(t *testing.T) {
	base, _, _ := newBase(t)
	assert.Equal(t, origin+"/", base.ResolveURL(""))
	assert.Equal(t, origin+"/login", base.ResolveURL("login"))
	assert.Equal(t, origin+"/my-bdjobs/my-profile", base.ResolveURL("/my-bdjobs/my-profile"))
}

func TestBasePage_Navigate(t *testing.T) {
	base, s, logs := newBase(t)
	s.On("Goto", origin+"/jobs").Return(nil).Once()

	require.NoError(t, base.Navigate("jobs"))
	assert.Equal(t, 1, logs.FilterMessage("navigate").Len())
}

func TestBasePage_NavigateError(t *testing.T) {
	base, s, _ := newBase(t)
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	s.On("Goto", origin+"/login").Return(cause).Once()

	err := base.Navigate("login")

	var navErr *NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, origin+"/login", navErr.URL)
	assert.ErrorIs(t, err, ErrNavigation)
	assert.ErrorIs(t, err, cause)
}

func TestBasePage_WaitForLoad(t *testing.T) {
	base, s, _ := newBase(t)
	s.On("WaitForLoadState", 5*time.Second).Return(nil).Once()
	require.NoError(t, base.WaitForLoad())

	s.On("WaitForLoadState", 5*time.Second).Return(timeoutErr()).Once()
	err := base.WaitForLoad()
	var tErr *TimeoutError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 5*time.Second, tErr.Timeout)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestBasePage_ClickClassifiesErrors(t *testing.T) {
	loc := locator.New("button.search-btn")

	t.Run("ok", func(t *testing.T) {
		base, s, _ := newBase(t)
		s.On("Click", "button.search-btn").Return(nil).Once()
		assert.NoError(t, base.Click(loc))
	})

	t.Run("no match", func(t *testing.T) {
		base, s, _ := newBase(t)
		s.On("Click", "button.search-btn").Return(timeoutErr()).Once()
		s.On("Count", "button.search-btn").Return(0, nil).Once()

		err := base.Click(loc)
		var nf *ElementNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "click", nf.Op)
		assert.Equal(t, "button.search-btn", nf.Locator)
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.NotErrorIs(t, err, ErrTimeout)
	})

	t.Run("present but stuck", func(t *testing.T) {
		base, s, _ := newBase(t)
		s.On("Click", "button.search-btn").Return(timeoutErr()).Once()
		s.On("Count", "button.search-btn").Return(1, nil).Once()

		err := base.Click(loc)
		var tErr *TimeoutError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, 2*time.Second, tErr.Timeout)
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("other failure", func(t *testing.T) {
		base, s, _ := newBase(t)
		cause := errors.New("element is not enabled")
		s.On("Click", "button.search-btn").Return(cause).Once()
		s.On("Count", "button.search-btn").Return(1, nil).Once()

		err := base.Click(loc)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrTimeout)
		assert.NotErrorIs(t, err, ErrElementNotFound)
	})

	t.Run("closed session", func(t *testing.T) {
		base, s, _ := newBase(t)
		s.On("Click", "button.search-btn").Return(browser.ErrSessionClosed).Once()

		err := base.Click(loc)
		assert.ErrorIs(t, err, browser.ErrSessionClosed)
		s.AssertNotCalled(t, "Count", "button.search-btn")
	})
}

func TestBasePage_FillSelectCheck(t *testing.T) {
	base, s, _ := newBase(t)
	s.On("Fill", "input[name='email']", "a@b.c").Return(nil).Once()
	s.On("SelectOption", "select[name='gender']", "M").Return(nil).Once()
	s.On("Check", "input[name='terms']").Return(nil).Once()

	require.NoError(t, base.Fill(locator.New("input[name='email']"), "a@b.c"))
	require.NoError(t, base.SelectOption(locator.New("select[name='gender']"), "M"))
	require.NoError(t, base.Check(locator.New("input[name='terms']")))
}

func TestBasePage_IsVisibleAbsorbsErrors(t *testing.T) {
	base, s, logs := newBase(t)
	s.On("IsVisible", ".featured-jobs").Return(true, nil).Once()
	s.On("IsVisible", ".salary-info").Return(false, timeoutErr()).Once()
	s.On("IsVisible", ".error-message").Return(true, browser.ErrSessionClosed).Once()

	assert.True(t, base.IsVisible(locator.New(".featured-jobs")))
	assert.False(t, base.IsVisible(locator.New(".salary-info")))
	assert.False(t, base.IsVisible(locator.New(".error-message")))
	assert.Equal(t, 2, logs.FilterMessage("visibility check failed").Len())
}

func TestBasePage_TakeScreenshot(t *testing.T) {
	base, s, logs := newBase(t)
	want := filepath.Join("shots", "login_failed_1.png")
	s.On("Screenshot", want).Return(nil).Once()
	assert.Equal(t, want, base.TakeScreenshot("login/failed 1"))

	s.On("Screenshot", filepath.Join("shots", "broken.png")).Return(errors.New("disk full")).Once()
	assert.Empty(t, base.TakeScreenshot("broken"))
	warn := logs.FilterMessage("failed to capture screenshot")
	require.Equal(t, 1, warn.Len())
	assert.Equal(t, zapcore.WarnLevel, warn.All()[0].Level)
}

func TestBasePage_TextContent(t *testing.T) {
	base, s, _ := newBase(t)
	s.On("TextContent", ".job-title").Return("  Go Developer \n", nil).Once()
	s.On("AllTextContents", ".job-title-text").Return([]string{" a ", "b"}, nil).Once()
	s.On("Count", ".profile-section").Return(4, nil).Once()

	text, err := base.TextContent(locator.New(".job-title"))
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", text)

	all, err := base.AllTextContents(locator.New(".job-title-text"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, all)

	n, err := base.Count(locator.New(".profile-section"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestBasePage_WaitForSelector(t *testing.T) {
	base, s, _ := newBase(t)
	s.On("WaitForSelector", ".pagination", browser.StateVisible, 2*time.Second).Return(nil).Once()
	s.On("WaitForSelector", ".spinner", browser.StateHidden, time.Second).Return(timeoutErr()).Once()

	require.NoError(t, base.WaitForSelector(locator.New(".pagination"), browser.StateVisible, 0))

	err := base.WaitForSelector(locator.New(".spinner"), browser.StateHidden, time.Second)
	var tErr *TimeoutError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ".spinner", tErr.Locator)
}
