package main

import (
	"fmt"
	"io"
	"sync"
)

// dotProgress prints a fixed-width row of dots as rows are filled. Callbacks
// arrive concurrently and out of order from the fill workers.
type dotProgress struct {
	mu          sync.Mutex
	w           io.Writer
	width       int
	dotsPrinted int
	done        int
}

func newDotProgress(w io.Writer, width int) *dotProgress {
	return &dotProgress{w: w, width: width}
}

// Update records that one more row is complete. It matches the
// forge.Options.ProgressCallback signature.
func (p *dotProgress) Update(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		return
	}
	p.done = max(p.done, current)

	target := min(p.done*p.width/total, p.width)
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		fmt.Fprint(p.w, ".")
	}
}

// Finish terminates the line if anything was printed.
func (p *dotProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dotsPrinted > 0 {
		fmt.Fprintln(p.w)
	}
}
