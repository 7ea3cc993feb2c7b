package svgexport

import (
	"strconv"

	"github.com/benoitkugler/okcanvas/config"
)

// Context carries the state of one export: the numeric precision and
// the counter used to allocate element ids. A fresh context starts
// its ids at 0, so that exporting the same scene twice gives the same markup.
//
// A Context is not safe for concurrent use.
type Context struct {
	// Digits is the number of fraction digits used for computed values.
	Digits int

	// Reviver, if not nil, is called on the markup of every object
	// and may rewrite it.
	Reviver func(markup string) string

	nextID int
}

// NewContext returns a context using the global precision.
func NewContext() *Context {
	return &Context{Digits: config.Get().NumFractionDigits}
}

// Num formats v with the context precision.
func (c *Context) Num(v float64) string { return Num(v, c.Digits) }

// NextClipPathID allocates a new clip path id: CLIPPATH_0, CLIPPATH_1, ...
func (c *Context) NextClipPathID() string {
	id := "CLIPPATH_" + strconv.Itoa(c.nextID)
	c.nextID++
	return id
}

// NextID allocates an id with the given prefix, sharing the clip path counter.
func (c *Context) NextID(prefix string) string {
	id := prefix + strconv.Itoa(c.nextID)
	c.nextID++
	return id
}

// Revive applies the reviver, if any.
func (c *Context) Revive(markup string) string {
	if c.Reviver == nil {
		return markup
	}
	return c.Reviver(markup)
}

// OrDefault returns c, or a new context if c is nil.
func OrDefault(c *Context) *Context {
	if c == nil {
		return NewContext()
	}
	return c
}
