package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go-bdjobs-e2e/internal/config"
	"go-bdjobs-e2e/internal/logging"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

var (
	// ErrManagerClosed is returned when a context is requested after Close.
	ErrManagerClosed = errors.New("playwright manager closed")
	// ErrUnavailable wraps failures to install, start or launch the browser.
	ErrUnavailable = errors.New("browser unavailable")
)

// PlaywrightManager owns the driver and browser process. It is safe to share
// between parallel tests; each test gets its own context through NewSession.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.Config

	mu     sync.Mutex
	closed bool
}

// NewPlaywright starts the driver and launches Chromium. Browsers are
// installed first when PLAYWRIGHT_INSTALL=1.
func NewPlaywright(ctx context.Context, cfg *config.Config) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.Named("browser")

	if os.Getenv("PLAYWRIGHT_INSTALL") == "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("%w: could not install playwright browsers: %w", ErrUnavailable, err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: could not start playwright: %w", ErrUnavailable, err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMoMs)),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: could not launch browser: %w", ErrUnavailable, err)
	}

	log.Info("browser launched",
		zap.Bool("headless", cfg.Headless),
		zap.Int("slow_mo_ms", cfg.SlowMoMs),
		zap.String("version", browser.Version()))

	return &PlaywrightManager{pw: pw, browser: browser, cfg: cfg}, nil
}

// NewContext creates an isolated browser context with the configured
// viewport, timeouts and video recording, seeded with cookies.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.closed {
		return nil, ErrManagerClosed
	}

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  pm.cfg.Viewport.Width,
			Height: pm.cfg.Viewport.Height,
		},
		IgnoreHttpsErrors: playwright.Bool(pm.cfg.IgnoreHTTPSErrors),
	}
	if pm.cfg.RecordVideo {
		opts.RecordVideo = &playwright.RecordVideo{Dir: pm.cfg.VideosDir}
	}

	bctx, err := pm.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(pm.cfg.Timeout().Milliseconds()))

	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			_ = bctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return bctx, nil
}

// NewSession opens a context and a single page in it. Cookies are loaded from
// the configured cookies file when one is set.
func (pm *PlaywrightManager) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cookies []playwright.OptionalCookie
	if pm.cfg.CookiesPath != "" {
		loaded, err := LoadCookies(pm.cfg.CookiesPath)
		if err != nil {
			return nil, fmt.Errorf("could not load cookies: %w", err)
		}
		cookies = loaded
	}

	bctx, err := pm.NewContext(cookies)
	if err != nil {
		return nil, err
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return newPlaywrightSession(bctx, page, pm.cfg.RecordVideo), nil
}

// Close shuts the browser and stops the driver. Safe to call more than once.
func (pm *PlaywrightManager) Close() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.closed {
		return nil
	}
	pm.closed = true

	var errs []error
	if err := pm.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	if err := pm.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

// LazyManager starts the shared PlaywrightManager on the first NewSession,
// so runs that never open a page never launch a browser.
type LazyManager struct {
	cfg *config.Config

	once sync.Once
	mgr  *PlaywrightManager
	err  error
}

func NewLazyManager(cfg *config.Config) *LazyManager {
	return &LazyManager{cfg: cfg}
}

func (l *LazyManager) NewSession(ctx context.Context) (Session, error) {
	l.once.Do(func() {
		l.mgr, l.err = NewPlaywright(ctx, l.cfg)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.mgr.NewSession(ctx)
}

// Close stops the browser if it was ever started.
func (l *LazyManager) Close() error {
	l.once.Do(func() { l.err = ErrManagerClosed })
	if l.mgr == nil {
		return nil
	}
	return l.mgr.Close()
}
