package pages

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels for errors.Is against the typed errors below.
var (
	ErrNavigation      = errors.New("navigation failed")
	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("operation timed out")
)

// NavigationError means the session could not load URL.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate to %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func (e *NavigationError) Is(target error) bool { return target == ErrNavigation }

// ElementNotFoundError means Locator matched nothing when Op ran.
type ElementNotFoundError struct {
	Op      string
	Locator string
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s: no element matches %s", e.Op, e.Locator)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

func (e *ElementNotFoundError) Is(target error) bool { return target == ErrElementNotFound }

// TimeoutError means Op did not complete within Timeout. Locator is empty for
// page-level waits.
type TimeoutError struct {
	Op      string
	Locator string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Locator == "" {
		return fmt.Sprintf("%s: timed out after %s", e.Op, e.Timeout)
	}
	return fmt.Sprintf("%s %s: timed out after %s", e.Op, e.Locator, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
