package renderer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/df07/go-raytracer/pkg/core"
)

// ProgressReporter is notified as scanlines complete. Updates may arrive
// from several workers at once and are advisory only.
type ProgressReporter interface {
	Update(remaining, total int)
	Done()
}

// NopProgress ignores progress updates
type NopProgress struct{}

func (NopProgress) Update(remaining, total int) {}
func (NopProgress) Done()                       {}

// TerminalProgress shows a live scanline counter on an interactive terminal
// and falls back to a log line per 10% otherwise
type TerminalProgress struct {
	mu            sync.Mutex
	out           io.Writer
	interactive   bool
	logger        core.Logger
	lastRemaining int
	lastDecile    int
}

// NewTerminalProgress creates a reporter writing to out. The counter is only
// redrawn in place when out is a terminal.
func NewTerminalProgress(out *os.File, logger core.Logger) *TerminalProgress {
	return newTerminalProgress(out, term.IsTerminal(int(out.Fd())), logger)
}

func newTerminalProgress(out io.Writer, interactive bool, logger core.Logger) *TerminalProgress {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &TerminalProgress{
		out:           out,
		interactive:   interactive,
		logger:        logger,
		lastRemaining: -1,
	}
}

// Update reports the number of scanlines still to render
func (p *TerminalProgress) Update(remaining, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Workers finish out of order; never move the counter backwards
	if p.lastRemaining >= 0 && remaining >= p.lastRemaining {
		return
	}
	p.lastRemaining = remaining

	if p.interactive {
		fmt.Fprintf(p.out, "\rScanlines remaining: %d ", remaining)
		return
	}

	if total <= 0 {
		return
	}
	decile := (total - remaining) * 10 / total
	if decile > p.lastDecile {
		p.lastDecile = decile
		p.logger.Infof("%d%% of scanlines done (%d remaining)", decile*10, remaining)
	}
}

// Done terminates the progress line
func (p *TerminalProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive {
		fmt.Fprint(p.out, "\rDone.                       \n")
		return
	}
	p.logger.Infof("Done.")
}
