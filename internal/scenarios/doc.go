// Package scenarios holds the browser journeys run against the job portal.
// Every test gets its own session through harness.Run; run with
//
//	go test ./internal/scenarios/ -run Login
//	E2E_TAGS=smoke go test ./internal/scenarios/
package scenarios
