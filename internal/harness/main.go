package harness

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go-bdjobs-e2e/internal/browser"
	"go-bdjobs-e2e/internal/config"
	"go-bdjobs-e2e/internal/database"
	"go-bdjobs-e2e/internal/logging"
	"go-bdjobs-e2e/internal/models"
	"go-bdjobs-e2e/internal/portal"
	"go-bdjobs-e2e/internal/telegram"
	"go-bdjobs-e2e/internal/testdata"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var current atomic.Pointer[Suite]

// Main is the TestMain of a scenario package: it loads the config, starts the
// stub portal when no site is configured, runs the tests and reports the run.
func Main(m *testing.M) {
	os.Exit(runMain(m))
}

func runMain(m *testing.M) int {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e config: %v\n", err)
		return 1
	}
	logging.Initialize(cfg.Logger)
	defer logging.Sync()
	log := logging.Named("harness")

	baseURL := cfg.BaseURL
	if cfg.UseLocalPortal() {
		srv, err := portal.Start("127.0.0.1:0", portal.NewSeededStore(), logging.Named("portal"))
		if err != nil {
			log.Error("failed to start stub portal", zap.Error(err))
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		baseURL = srv.URL
	}

	manager := browser.NewLazyManager(cfg)
	runID := uuid.NewString()
	suite := NewSuite(cfg, manager, baseURL, runID, testdata.NewEmailLedger(cfg.LedgerPath), log)
	current.Store(suite)
	defer current.Store(nil)

	log.Info("e2e run starting", zap.String("run_id", runID), zap.String("base_url", baseURL), zap.Strings("tags", cfg.Tags))
	code := m.Run()

	if err := manager.Close(); err != nil {
		log.Warn("failed to stop browser", zap.Error(err))
	}

	pkg := "e2e"
	if wd, err := os.Getwd(); err == nil {
		pkg = filepath.Base(wd)
	}
	summary := suite.Summary(pkg)
	log.Info("e2e run finished",
		zap.Int("passed", summary.Count(models.StatusPassed)),
		zap.Int("failed", summary.Count(models.StatusFailed)),
		zap.Int("skipped", summary.Count(models.StatusSkipped)))

	report(cfg, summary, log)
	return code
}

// report sends the summary to every configured sink. Failures are logged only.
func report(cfg *config.Config, summary models.RunSummary, log *zap.Logger) {
	if len(summary.Results) == 0 {
		return
	}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn("failed to create telegram bot", zap.Error(err))
		} else if err := bot.SendSummary(summary); err != nil {
			log.Warn("failed to send telegram summary", zap.Error(err))
		}
	}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := persist(ctx, cfg.DatabaseURL, summary, log); err != nil {
			log.Warn("failed to persist run", zap.Error(err))
		}
	}
}

func persist(ctx context.Context, dbURL string, summary models.RunSummary, log *zap.Logger) error {
	repo, err := database.ConnectDB(ctx, dbURL, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.SaveRun(ctx, summary)
}

func suiteFor(t *testing.T) *Suite {
	t.Helper()
	s := current.Load()
	if s == nil {
		t.Fatal("harness: no suite; call harness.Main from TestMain")
	}
	return s
}

// Run runs fn against a fresh session of the package suite.
func Run(t *testing.T, fn func(fx *Fixture)) {
	t.Helper()
	suiteFor(t).Run(t, fn)
}

// Tag skips t unless the E2E_TAGS filter is empty or names one of tags.
func Tag(t *testing.T, tags ...string) {
	t.Helper()
	suiteFor(t).Tag(t, tags...)
}
