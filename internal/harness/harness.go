// Package harness wires scenarios to the browser: one session and one set of
// page objects per test, torn down on every exit path.
package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"testing"
	"time"

	"go-bdjobs-e2e/internal/browser"
	"go-bdjobs-e2e/internal/config"
	"go-bdjobs-e2e/internal/models"
	"go-bdjobs-e2e/internal/pages"
	"go-bdjobs-e2e/internal/testdata"

	"go.uber.org/zap"
)

// T is the part of *testing.T the lifecycle needs.
type T interface {
	Helper()
	Name() string
	Cleanup(func())
	Failed() bool
	Skipped() bool
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Skipf(format string, args ...any)
}

type SessionOpener interface {
	NewSession(ctx context.Context) (browser.Session, error)
}

// Fixture is what a scenario body receives.
type Fixture struct {
	Session browser.Session
	BaseURL string
	RunID   string
	Config  *config.Config

	Home         *pages.HomePage
	Login        *pages.LoginPage
	Search       *pages.JobSearchPage
	Details      *pages.JobDetailsPage
	Registration *pages.RegistrationPage
	Profile      *pages.ProfilePage

	// Credentials is the account the authenticated journeys sign in with.
	Credentials testdata.Credentials
	Ledger      *testdata.EmailLedger
	// Data is seeded from the test name, so a rerun fills the same values.
	Data *testdata.Generator
	Log  *zap.Logger
}

// LoginAsValidUser signs in with Credentials.
func (fx *Fixture) LoginAsValidUser() error {
	if err := fx.Login.Navigate(); err != nil {
		return err
	}
	return fx.Login.Login(fx.Credentials.Email, fx.Credentials.Password)
}

// UniqueEmail is a generated address no earlier run has registered.
func (fx *Fixture) UniqueEmail() string {
	return fx.Ledger.Reserve(testdata.RandomEmail())
}

// Suite holds what every test of a package shares.
type Suite struct {
	cfg     *config.Config
	opener  SessionOpener
	baseURL string
	runID   string
	ledger  *testdata.EmailLedger
	log     *zap.Logger
	started time.Time

	mu      sync.Mutex
	results []models.TestResult
}

func NewSuite(cfg *config.Config, opener SessionOpener, baseURL, runID string, ledger *testdata.EmailLedger, log *zap.Logger) *Suite {
	return &Suite{
		cfg:     cfg,
		opener:  opener,
		baseURL: baseURL,
		runID:   runID,
		ledger:  ledger,
		log:     log,
		started: time.Now(),
	}
}

// Run opens a session, builds the page objects and calls fn. The session is
// closed from t.Cleanup whatever fn does, after a screenshot when the test
// failed. Panics in fn are reported as test failures.
func (s *Suite) Run(t *testing.T, fn func(fx *Fixture)) {
	t.Helper()
	if testing.Short() {
		t.Skip("browser scenario skipped in short mode")
	}
	if s.cfg.Parallel {
		t.Parallel()
	}
	s.run(t, fn)
}

func (s *Suite) run(t T, fn func(fx *Fixture)) {
	t.Helper()
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout())
	session, err := s.opener.NewSession(ctx)
	cancel()
	if errors.Is(err, browser.ErrUnavailable) {
		s.record(t, start, "", "", "", err.Error(), models.StatusSkipped)
		t.Skipf("%v", err)
		return
	}
	if err != nil {
		s.record(t, start, "", "", "", err.Error(), models.StatusFailed)
		t.Fatalf("could not open browser session: %v", err)
		return
	}

	fx := s.newFixture(t, session)
	t.Cleanup(func() { s.teardown(t, fx, start) })

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("scenario panicked: %v\n%s", r, debug.Stack())
			}
		}()
		fn(fx)
	}()
}

func (s *Suite) newFixture(t T, session browser.Session) *Fixture {
	data := testdata.NewGenerator(testdata.SeedFor(t.Name()))
	log := s.log.With(zap.String("test", t.Name()), zap.Uint64("data_seed", data.Seed()))
	base := pages.NewBasePage(session, pages.Options{
		Origin:         s.baseURL,
		ScreenshotsDir: s.cfg.ScreenshotsDir,
		LoadTimeout:    s.cfg.LoadTimeout(),
		ActionTimeout:  s.cfg.Timeout(),
		Logger:         log.Named("pages"),
	})
	return &Fixture{
		Session:      session,
		BaseURL:      s.baseURL,
		RunID:        s.runID,
		Config:       s.cfg,
		Home:         pages.NewHomePage(base),
		Login:        pages.NewLoginPage(base),
		Search:       pages.NewJobSearchPage(base),
		Details:      pages.NewJobDetailsPage(base),
		Registration: pages.NewRegistrationPage(base),
		Profile:      pages.NewProfilePage(base),
		Credentials:  testdata.WithCredentials(s.cfg.ValidEmail, s.cfg.ValidPassword),
		Ledger:       s.ledger,
		Data:         data,
		Log:          log,
	}
}

type videoRecorder interface {
	VideoPath() string
}

func (s *Suite) teardown(t T, fx *Fixture, start time.Time) {
	finalURL := fx.Session.URL()

	var shot string
	if t.Failed() {
		shot = fx.Home.TakeScreenshot(safeName(t.Name()) + "_failure")
	}

	var errMsg string
	if err := fx.Session.Close(); err != nil {
		fx.Log.Warn("failed to close session", zap.Error(err))
		errMsg = fmt.Sprintf("close session: %v", err)
	}

	var video string
	if v, ok := fx.Session.(videoRecorder); ok {
		video = v.VideoPath()
	}

	status := models.StatusPassed
	switch {
	case t.Failed():
		status = models.StatusFailed
	case t.Skipped():
		status = models.StatusSkipped
	}
	res := s.record(t, start, finalURL, shot, video, errMsg, status)

	if path, err := SaveResult(s.cfg.ResultsDir, res); err != nil {
		fx.Log.Warn("failed to save result", zap.Error(err))
	} else {
		fx.Log.Debug("result saved", zap.String("path", path))
	}
	fx.Log.Info("test finished", zap.String("status", string(status)), zap.Int64("duration_ms", res.DurationMs))
}

func (s *Suite) record(t T, start time.Time, finalURL, shot, video, errMsg string, status models.TestStatus) models.TestResult {
	now := time.Now()
	res := models.TestResult{
		RunID:      s.runID,
		Name:       t.Name(),
		Status:     status,
		StartedAt:  start,
		FinishedAt: now,
		DurationMs: now.Sub(start).Milliseconds(),
		FinalURL:   finalURL,
		Screenshot: shot,
		Video:      video,
		Error:      errMsg,
	}
	s.mu.Lock()
	s.results = append(s.results, res)
	s.mu.Unlock()
	return res
}

// Summary is every result recorded so far.
func (s *Suite) Summary(pkg string) models.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RunSummary{
		RunID:      s.runID,
		Package:    pkg,
		StartedAt:  s.started,
		FinishedAt: time.Now(),
		Results:    append([]models.TestResult(nil), s.results...),
	}
}

// Tag skips t unless the configured tag filter is empty or names one of tags.
func (s *Suite) Tag(t T, tags ...string) {
	t.Helper()
	if len(s.cfg.Tags) == 0 {
		return
	}
	for _, want := range s.cfg.Tags {
		for _, tag := range tags {
			if strings.EqualFold(want, tag) {
				return
			}
		}
	}
	t.Skipf("not tagged %v (have %v)", s.cfg.Tags, tags)
}
