package ui

import "fmt"

// Console is the rolling log of recent request activity. It is only
// touched from the update loop, so it needs no locking.
type Console struct {
	lines []string
	max   int
}

func NewConsole(max int) *Console {
	return &Console{max: max}
}

func (c *Console) Append(format string, args ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
	if len(c.lines) > c.max {
		c.lines = c.lines[len(c.lines)-c.max:]
	}
}

// Tail returns the most recent n lines, oldest first.
func (c *Console) Tail(n int) []string {
	if n >= len(c.lines) {
		return c.lines
	}
	return c.lines[len(c.lines)-n:]
}
