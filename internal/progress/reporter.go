// Package progress reports how far a long-running export has got.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Step per finished unit of work. Implementations are
// safe for concurrent use.
type Reporter interface {
	Start(total int, description string)
	Step(message string)
	Finish()
}

// NewReporter returns a bar on an interactive terminal and plain lines when
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &BarReporter{w: w}
}

// Nop discards progress.
func Nop() Reporter { return nopReporter{} }

type nopReporter struct{}

func (nopReporter) Start(int, string) {}
func (nopReporter) Step(string)       {}
func (nopReporter) Finish()           {}

// BarReporter draws a progress bar.
type BarReporter struct {
	w   io.Writer
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per step, for CI logs.
type LineReporter struct {
	w       io.Writer
	mu      sync.Mutex
	total   int
	current int
}

func (r *LineReporter) Start(total int, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total, r.current = total, 0
	fmt.Fprintf(r.w, "%s: %d pages\n", description, total)
}

func (r *LineReporter) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current++
	fmt.Fprintf(r.w, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *LineReporter) Finish() {
	fmt.Fprintln(r.w, "Export complete")
}
