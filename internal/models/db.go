package models

import (
	"time"
)

type TestStatus string

const (
	StatusPassed  TestStatus = "PASSED"
	StatusFailed  TestStatus = "FAILED"
	StatusSkipped TestStatus = "SKIPPED"
)

// TestResult is one scenario outcome. It is what the harness dumps to
// results/<test>_<timestamp>.json and what the run history stores.
type TestResult struct {
	RunID      string     `json:"run_id"`
	Name       string     `json:"name"`
	Status     TestStatus `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	DurationMs int64      `json:"duration_ms"`
	FinalURL   string     `json:"final_url,omitempty"`
	Screenshot string     `json:"screenshot,omitempty"`
	Video      string     `json:"video,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type RunSummary struct {
	RunID      string       `json:"run_id"`
	Package    string       `json:"package"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []TestResult `json:"results"`
}

func (s RunSummary) Count(status TestStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Failures returns the failed results in run order.
func (s RunSummary) Failures() []TestResult {
	var out []TestResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}
