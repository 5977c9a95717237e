package cmd

import (
	"errors"

	"github.com/coregx/kmp"
)

var (
	// errNoDatasets is returned when the input directory holds no dataset files.
	errNoDatasets = errors.New("no *.json datasets found")

	// errNoResults is returned when every dataset of a run failed.
	errNoResults = errors.New("no results produced (all inputs failed?)")
)

// ExitCode maps an error returned by Execute to a process exit status:
// 2 for invalid search input, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, kmp.ErrInvalidArgument) {
		return 2
	}
	return 1
}
