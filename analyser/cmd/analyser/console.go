package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/osler/analysers/analyser/internal/session"
	"github.com/osler/analysers/pkg/types"
)

// console is a line-oriented session.Presenter.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ session.Presenter = (*console)(nil)

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) ShowEntry(v session.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf("%s: tested %d, positive %d, %d%%", v.Name, v.Tested, v.Positive, v.Percent)
	if v.Severity != "" {
		line += " [" + v.Severity + "]"
	}
	fmt.Fprintln(c.w, line)
}

func (c *console) ShowOverall(t types.Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "Overall: tested %d, positive %d, %d%%\n", t.Tested, t.Positive, t.Percent)
}

func (c *console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "-")
}

func (c *console) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, strings.TrimRight(msg, "\n"))
}
