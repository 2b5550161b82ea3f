package logging

import "testing"

func TestNewProducesUsableLogger(t *testing.T) {
	logger := New(true)
	// Smoke test: logging at any level must not panic regardless of
	// whether stderr is attached to a terminal in the test runner.
	logger.Info().Str("component", "test").Msg("ready")
}
