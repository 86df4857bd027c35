package pages

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go-bdjobs-e2e/internal/browser"
	"go-bdjobs-e2e/internal/locator"
	"go-bdjobs-e2e/internal/logging"

	"go.uber.org/zap"
)

// Options configures the BasePage shared by every page object of a session.
type Options struct {
	Origin         string
	ScreenshotsDir string
	LoadTimeout    time.Duration
	ActionTimeout  time.Duration
	Logger         *zap.Logger
}

// BasePage is the capability set every page object embeds. It adds no
// waiting or retrying of its own; errors from the session are classified into
// NavigationError, ElementNotFoundError or TimeoutError.
type BasePage struct {
	session        browser.Session
	origin         string
	screenshotsDir string
	loadTimeout    time.Duration
	actionTimeout  time.Duration
	log            *zap.Logger
}

func NewBasePage(session browser.Session, opts Options) BasePage {
	if opts.Logger == nil {
		opts.Logger = logging.Named("pages")
	}
	if opts.ScreenshotsDir == "" {
		opts.ScreenshotsDir = "screenshots"
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 30 * time.Second
	}
	return BasePage{
		session:        session,
		origin:         strings.TrimRight(opts.Origin, "/"),
		screenshotsDir: opts.ScreenshotsDir,
		loadTimeout:    opts.LoadTimeout,
		actionTimeout:  opts.ActionTimeout,
		log:            opts.Logger,
	}
}

// Session exposes the underlying session for assertions the page objects do
// not cover.
func (b BasePage) Session() browser.Session { return b.session }

// Origin is the site root every path is resolved against.
func (b BasePage) Origin() string { return b.origin }

// ResolveURL joins path onto the origin.
func (b BasePage) ResolveURL(path string) string {
	return b.origin + "/" + strings.TrimLeft(path, "/")
}

func (b BasePage) Navigate(path string) error {
	url := b.ResolveURL(path)
	b.log.Info("navigate", zap.String("url", url))
	if err := b.session.Goto(url); err != nil {
		return &NavigationError{URL: url, Err: err}
	}
	return nil
}

// WaitForLoad blocks until the network has been idle, bounded by the load
// timeout.
func (b BasePage) WaitForLoad() error {
	if err := b.session.WaitForLoadState(b.loadTimeout); err != nil {
		if browser.IsTimeout(err) {
			return &TimeoutError{Op: "wait for load", Timeout: b.loadTimeout, Err: err}
		}
		return fmt.Errorf("wait for load: %w", err)
	}
	return nil
}

func (b BasePage) Click(loc locator.Locator) error {
	return b.act("click", loc, func(sel string) error { return b.session.Click(sel) })
}

func (b BasePage) Fill(loc locator.Locator, text string) error {
	return b.act("fill", loc, func(sel string) error { return b.session.Fill(sel, text) })
}

func (b BasePage) SelectOption(loc locator.Locator, value string) error {
	return b.act("select option", loc, func(sel string) error { return b.session.SelectOption(sel, value) })
}

func (b BasePage) Check(loc locator.Locator) error {
	return b.act("check", loc, func(sel string) error { return b.session.Check(sel) })
}

// IsVisible never fails. Every error, timeouts included, reads as not visible.
func (b BasePage) IsVisible(loc locator.Locator) bool {
	visible, err := b.session.IsVisible(loc.String())
	if err != nil {
		b.log.Debug("visibility check failed", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}
	return visible
}

func (b BasePage) TextContent(loc locator.Locator) (string, error) {
	var text string
	err := b.act("text content", loc, func(sel string) error {
		var err error
		text, err = b.session.TextContent(sel)
		return err
	})
	return strings.TrimSpace(text), err
}

// AllTextContents returns the trimmed text of every match in DOM order. Zero
// matches is an empty slice, not an error.
func (b BasePage) AllTextContents(loc locator.Locator) ([]string, error) {
	texts, err := b.session.AllTextContents(loc.String())
	if err != nil {
		return nil, b.classify("all text contents", loc, err)
	}
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		out = append(out, strings.TrimSpace(t))
	}
	return out, nil
}

func (b BasePage) Count(loc locator.Locator) (int, error) {
	n, err := b.session.Count(loc.String())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", loc, err)
	}
	return n, nil
}

func (b BasePage) WaitForSelector(loc locator.Locator, state browser.ElementState, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = b.actionTimeout
	}
	err := b.session.WaitForSelector(loc.String(), state, timeout)
	if err == nil {
		return nil
	}
	if browser.IsTimeout(err) {
		return &TimeoutError{Op: "wait for " + string(state), Locator: loc.String(), Timeout: timeout, Err: err}
	}
	return fmt.Errorf("wait for %s %s: %w", state, loc, err)
}

func (b BasePage) Title() (string, error) {
	return b.session.Title()
}

func (b BasePage) URL() string {
	return b.session.URL()
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// TakeScreenshot writes <screenshots dir>/<name>.png and returns the path.
// Failures are logged and swallowed; the returned path is empty then.
func (b BasePage) TakeScreenshot(name string) string {
	name = unsafeName.ReplaceAllString(name, "_")
	if name == "" {
		name = "screenshot"
	}
	path := filepath.Join(b.screenshotsDir, name+".png")
	if err := b.session.Screenshot(path); err != nil {
		b.log.Warn("failed to capture screenshot", zap.String("path", path), zap.Error(err))
		return ""
	}
	b.log.Info("screenshot saved", zap.String("path", path))
	return path
}

func (b BasePage) act(op string, loc locator.Locator, fn func(selector string) error) error {
	if err := fn(loc.String()); err != nil {
		return b.classify(op, loc, err)
	}
	return nil
}

// classify maps a failed element action onto the error taxonomy. A zero count
// after the failure means the locator never matched.
func (b BasePage) classify(op string, loc locator.Locator, err error) error {
	if errors.Is(err, browser.ErrSessionClosed) {
		return fmt.Errorf("%s %s: %w", op, loc, err)
	}
	if n, cerr := b.session.Count(loc.String()); cerr == nil && n == 0 {
		return &ElementNotFoundError{Op: op, Locator: loc.String(), Err: err}
	}
	if browser.IsTimeout(err) {
		return &TimeoutError{Op: op, Locator: loc.String(), Timeout: b.actionTimeout, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, loc, err)
}
