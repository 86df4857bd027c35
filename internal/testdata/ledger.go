package testdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go-bdjobs-e2e/internal/logging"

	"go.uber.org/zap"
)

const ledgerFile = "registered_emails.json"

const ledgerTTL = 30 * 24 * time.Hour

type ledgerEntry struct {
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}

// EmailLedger remembers the emails registered by earlier runs so a generated
// address is never submitted twice. Entries older than 30 days are dropped on
// load. Safe for concurrent use.
type EmailLedger struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	log      *zap.Logger
}

// NewEmailLedger creates or loads the ledger kept in dir.
func NewEmailLedger(dir string) *EmailLedger {
	log := logging.Named("testdata")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("failed to create ledger directory", zap.String("dir", dir), zap.Error(err))
	}
	l := &EmailLedger{
		filePath: filepath.Join(dir, ledgerFile),
		seen:     make(map[string]int64),
		log:      log,
	}
	l.load()
	return l
}

func (l *EmailLedger) Seen(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[strings.ToLower(email)]
	return ok
}

// Reserve records candidate, or the first unused variant of it
// (test1@example.com, test1_2@example.com, ...), and returns what it recorded.
func (l *EmailLedger) Reserve(candidate string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	email := strings.ToLower(candidate)
	if _, taken := l.seen[email]; taken {
		local, domain, _ := strings.Cut(email, "@")
		for n := 2; ; n++ {
			email = fmt.Sprintf("%s_%d@%s", local, n, domain)
			if _, taken := l.seen[email]; !taken {
				break
			}
		}
	}
	l.seen[email] = time.Now().UnixMilli()
	l.save()
	return email
}

func (l *EmailLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

func (l *EmailLedger) load() {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Warn("failed to read email ledger", zap.String("path", l.filePath), zap.Error(err))
		}
		return
	}

	var entries []ledgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.log.Warn("failed to parse email ledger", zap.String("path", l.filePath), zap.Error(err))
		return
	}

	cutoff := time.Now().Add(-ledgerTTL).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			l.seen[strings.ToLower(e.Email)] = e.Timestamp
			loaded++
		}
	}
	l.log.Debug("email ledger loaded", zap.Int("loaded", loaded), zap.Int("expired", len(entries)-loaded))
}

// save must be called with mu held.
func (l *EmailLedger) save() {
	entries := make([]ledgerEntry, 0, len(l.seen))
	for email, ts := range l.seen {
		entries = append(entries, ledgerEntry{Email: email, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		l.log.Warn("failed to marshal email ledger", zap.Error(err))
		return
	}
	if err := os.WriteFile(l.filePath, data, 0644); err != nil {
		l.log.Warn("failed to write email ledger", zap.String("path", l.filePath), zap.Error(err))
	}
}
