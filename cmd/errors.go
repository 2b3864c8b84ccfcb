package cmd

import "errors"

var (
	// ErrUnsupportedOutput is returned for an unknown --output value
	ErrUnsupportedOutput = errors.New("unsupported output format")
	// ErrAnalysisFailed is returned when at least one domain could not be analyzed
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrNoInput is returned when extract has neither arguments nor piped input
	ErrNoInput = errors.New("no text given: pass arguments or pipe text on stdin")
)
