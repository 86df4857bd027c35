package pages

import (
	"time"

	"go-bdjobs-e2e/internal/browser"

	"github.com/stretchr/testify/mock"
)

type mockSession struct {
	mock.Mock
}

var _ browser.Session = (*mockSession)(nil)

func (m *mockSession) Goto(url string) error {
	return m.Called(url).Error(0)
}

func (m *mockSession) WaitForLoadState(timeout time.Duration) error {
	return m.Called(timeout).Error(0)
}

func (m *mockSession) Click(selector string) error {
	return m.Called(selector).Error(0)
}

func (m *mockSession) Fill(selector, text string) error {
	return m.Called(selector, text).Error(0)
}

func (m *mockSession) SelectOption(selector, value string) error {
	return m.Called(selector, value).Error(0)
}

func (m *mockSession) Check(selector string) error {
	return m.Called(selector).Error(0)
}

func (m *mockSession) WaitForSelector(selector string, state browser.ElementState, timeout time.Duration) error {
	return m.Called(selector, state, timeout).Error(0)
}

func (m *mockSession) IsVisible(selector string) (bool, error) {
	args := m.Called(selector)
	return args.Bool(0), args.Error(1)
}

func (m *mockSession) TextContent(selector string) (string, error) {
	args := m.Called(selector)
	return args.String(0), args.Error(1)
}

func (m *mockSession) AllTextContents(selector string) ([]string, error) {
	args := m.Called(selector)
	texts, _ := args.Get(0).([]string)
	return texts, args.Error(1)
}

func (m *mockSession) Count(selector string) (int, error) {
	args := m.Called(selector)
	return args.Int(0), args.Error(1)
}

func (m *mockSession) URL() string {
	return m.Called().String(0)
}

func (m *mockSession) Title() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockSession) Screenshot(path string) error {
	return m.Called(path).Error(0)
}

func (m *mockSession) Close() error {
	return m.Called().Error(0)
}
