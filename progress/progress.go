// Package progress renders a single-line progress indicator for long
// captures.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	defaultColumns = 80
	minBarWidth    = 10
)

// Bar tracks progress towards a known total. On a terminal it redraws one
// line in place, sized to the terminal width; on any other writer it prints a
// plain line every ten percent.
type Bar struct {
	w       io.Writer
	total   int64
	tty     bool
	columns int
	lastPct int
}

// New returns a Bar writing to w.
func New(w io.Writer, total int64) *Bar {
	b := &Bar{w: w, total: total, lastPct: -1}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		b.tty = true
		b.columns = termWidth(f.Fd())
		if b.columns <= 0 {
			b.columns = defaultColumns
		}
	}
	return b
}

func (b *Bar) percent(done int64) int {
	if b.total <= 0 {
		return 100
	}
	if done >= b.total {
		return 100
	}
	return int(done * 100 / b.total)
}

// Update reports that done units out of the total are complete.
func (b *Bar) Update(done int64) {
	pct := b.percent(done)
	if b.tty {
		if pct == b.lastPct {
			return
		}
		b.lastPct = pct
		fmt.Fprint(b.w, "\r"+render(done, b.total, pct, b.columns))
		return
	}
	step := pct / 10 * 10
	if step == b.lastPct {
		return
	}
	b.lastPct = step
	fmt.Fprintf(b.w, "progress: %3d%% (%d/%d)\n", step, done, b.total)
}

// Finish terminates the progress line.
func (b *Bar) Finish() {
	if b.tty {
		fmt.Fprintln(b.w)
	}
}

func render(done, total int64, pct, columns int) string {
	suffix := fmt.Sprintf(" %3d%% %d/%d", pct, done, total)
	width := columns - len(suffix) - 3
	if width < minBarWidth {
		width = minBarWidth
	}
	filled := width * pct / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]" + suffix
}
