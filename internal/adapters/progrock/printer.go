package progrock

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vito/progrock"
)

// Printer is a progrock.Writer that renders vertex transitions as plain
// lines. It is the sink behind the progress output mode on non-interactive
// terminals: a vertex prints once when it starts running and once when it
// completes.
type Printer struct {
	mu   sync.Mutex
	out  io.Writer
	seen map[string]vertexPhase
}

type vertexPhase int

const (
	phaseRunning vertexPhase = iota + 1
	phaseDone
)

// NewPrinter creates a Printer writing to out (stderr when nil).
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stderr
	}
	return &Printer{out: out, seen: make(map[string]vertexPhase)}
}

// WriteStatus implements progrock.Writer. Vertices arrive repeatedly as the
// recorder emits updates; only phase transitions produce a line.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			if p.seen[v.Id] == 0 {
				p.seen[v.Id] = phaseRunning
				_, _ = fmt.Fprintf(p.out, "» %s\n", v.Name)
			}
			continue
		}

		if p.seen[v.Id] == phaseDone {
			continue
		}
		p.seen[v.Id] = phaseDone

		switch {
		case v.Error != nil:
			_, _ = fmt.Fprintf(p.out, "✗ %s: %s\n", v.Name, *v.Error)
		case v.Cached:
			_, _ = fmt.Fprintf(p.out, "∙ %s (cached)\n", v.Name)
		default:
			_, _ = fmt.Fprintf(p.out, "✓ %s\n", v.Name)
		}
	}

	return nil
}

// Close implements the optional closer the reporter looks for.
func (p *Printer) Close() error {
	return nil
}
