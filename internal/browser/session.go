package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrSessionClosed is returned by every Session method called after Close.
var ErrSessionClosed = errors.New("browser session closed")

// ErrTimeout matches timeout failures from the underlying driver via errors.Is.
var ErrTimeout = playwright.ErrTimeout

type ElementState string

const (
	StateAttached ElementState = "attached"
	StateDetached ElementState = "detached"
	StateVisible  ElementState = "visible"
	StateHidden   ElementState = "hidden"
)

// Session is a live connection to one browser tab. Selector arguments are
// playwright selector strings; element actions apply to the first match.
type Session interface {
	Goto(url string) error
	WaitForLoadState(timeout time.Duration) error
	Click(selector string) error
	Fill(selector, text string) error
	SelectOption(selector, value string) error
	Check(selector string) error
	WaitForSelector(selector string, state ElementState, timeout time.Duration) error
	IsVisible(selector string) (bool, error)
	TextContent(selector string) (string, error)
	AllTextContents(selector string) ([]string, error)
	Count(selector string) (int, error)
	URL() string
	Title() (string, error)
	Screenshot(path string) error
	Close() error
}

// IsTimeout reports whether err came from an expired driver timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

type playwrightSession struct {
	context   playwright.BrowserContext
	page      playwright.Page
	recording bool

	mu        sync.Mutex
	closed    bool
	videoPath string
}

var _ Session = (*playwrightSession)(nil)

func newPlaywrightSession(bctx playwright.BrowserContext, page playwright.Page, recording bool) *playwrightSession {
	return &playwrightSession{context: bctx, page: page, recording: recording}
}

func (s *playwrightSession) live() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

func (s *playwrightSession) first(selector string) playwright.Locator {
	return s.page.Locator(selector).First()
}

func (s *playwrightSession) Goto(url string) error {
	if err := s.live(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) WaitForLoadState(timeout time.Duration) error {
	if err := s.live(); err != nil {
		return err
	}
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *playwrightSession) Click(selector string) error {
	if err := s.live(); err != nil {
		return err
	}
	return s.first(selector).Click()
}

func (s *playwrightSession) Fill(selector, text string) error {
	if err := s.live(); err != nil {
		return err
	}
	return s.first(selector).Fill(text)
}

func (s *playwrightSession) SelectOption(selector, value string) error {
	if err := s.live(); err != nil {
		return err
	}
	_, err := s.first(selector).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return err
}

func (s *playwrightSession) Check(selector string) error {
	if err := s.live(); err != nil {
		return err
	}
	return s.first(selector).Check()
}

func (s *playwrightSession) WaitForSelector(selector string, state ElementState, timeout time.Duration) error {
	if err := s.live(); err != nil {
		return err
	}
	return s.first(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   waitState(state),
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func waitState(state ElementState) *playwright.WaitForSelectorState {
	switch state {
	case StateAttached:
		return playwright.WaitForSelectorStateAttached
	case StateDetached:
		return playwright.WaitForSelectorStateDetached
	case StateHidden:
		return playwright.WaitForSelectorStateHidden
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

func (s *playwrightSession) IsVisible(selector string) (bool, error) {
	if err := s.live(); err != nil {
		return false, err
	}
	return s.first(selector).IsVisible()
}

func (s *playwrightSession) TextContent(selector string) (string, error) {
	if err := s.live(); err != nil {
		return "", err
	}
	return s.first(selector).TextContent()
}

func (s *playwrightSession) AllTextContents(selector string) ([]string, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	return s.page.Locator(selector).AllTextContents()
}

func (s *playwrightSession) Count(selector string) (int, error) {
	if err := s.live(); err != nil {
		return 0, err
	}
	return s.page.Locator(selector).Count()
}

func (s *playwrightSession) URL() string {
	if s.live() != nil {
		return ""
	}
	return s.page.URL()
}

func (s *playwrightSession) Title() (string, error) {
	if err := s.live(); err != nil {
		return "", err
	}
	return s.page.Title()
}

func (s *playwrightSession) Screenshot(path string) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create screenshot directory: %w", err)
	}
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// Close closes the page and its context. The context close flushes any
// recorded video. Calling Close more than once is a no-op.
func (s *playwrightSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	var errs []error
	var video playwright.Video
	if s.recording {
		video = s.page.Video()
	}
	if err := s.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close page: %w", err))
	}
	if err := s.context.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close context: %w", err))
	}
	if video != nil {
		if path, err := video.Path(); err == nil {
			s.mu.Lock()
			s.videoPath = path
			s.mu.Unlock()
		}
	}
	return errors.Join(errs...)
}

// VideoPath is the recorded video file, known only after Close.
func (s *playwrightSession) VideoPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoPath
}
