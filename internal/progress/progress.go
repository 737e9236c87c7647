// Package progress reports the steps of a long-running task.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Monitor receives progress for a task made of a known number of steps.
type Monitor interface {
	// BeginTask starts a task with the given total units of work.
	BeginTask(name string, totalWork int)
	// SetTaskName replaces the description of the current step.
	SetTaskName(name string)
	// Worked records n completed units of work.
	Worked(n int)
	// Done marks the task finished.
	Done()
}

// BarMonitor renders progress as a terminal progress bar.
type BarMonitor struct {
	out io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewBarMonitor creates a monitor that draws to w. A nil w means stderr.
func NewBarMonitor(w io.Writer) *BarMonitor {
	if w == nil {
		w = os.Stderr
	}
	return &BarMonitor{out: w}
}

// BeginTask starts a new bar.
func (m *BarMonitor) BeginTask(name string, totalWork int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.out
	m.bar = progressbar.NewOptions(totalWork,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// SetTaskName updates the bar description.
func (m *BarMonitor) SetTaskName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bar != nil {
		m.bar.Describe(name)
	}
}

// Worked advances the bar.
func (m *BarMonitor) Worked(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bar != nil {
		_ = m.bar.Add(n)
	}
}

// Done completes the bar.
func (m *BarMonitor) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bar != nil {
		_ = m.bar.Finish()
		m.bar = nil
	}
}

// NopMonitor discards all progress.
type NopMonitor struct{}

func (NopMonitor) BeginTask(string, int) {}
func (NopMonitor) SetTaskName(string)    {}
func (NopMonitor) Worked(int)            {}
func (NopMonitor) Done()                 {}
