package encode

import (
	"github.com/g2crowd/json-schema-tools/ir"

	"github.com/fatih/color"
)

// Colorable is the position of a piece of output: the type of the node
// being written and which part of it.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

// Colors maps output positions to terminal colors. Positions without an
// entry are written plain.
type Colors struct {
	m map[Colorable]*color.Color
}

func NewColors() *Colors {
	c := &Colors{}
	for _, t := range ir.Types() {
		c.Set(t, SepColor, color.New(color.FgHiBlack))
	}
	c.Set(ir.ObjectType, FieldColor, color.New(color.FgBlue))
	c.Set(ir.StringType, ValueColor, color.New(color.FgGreen))
	c.Set(ir.NumberType, ValueColor, color.New(color.FgCyan))
	c.Set(ir.BoolType, ValueColor, color.New(color.FgYellow))
	c.Set(ir.NullType, ValueColor, color.New(color.FgMagenta))
	return c
}

// Set colors position (t, a) with col. Colors set here are used even when
// stdout is not a terminal.
func (c *Colors) Set(t ir.Type, a ColorAttr, col *color.Color) {
	if c.m == nil {
		c.m = map[Colorable]*color.Color{}
	}
	col.EnableColor()
	c.m[Colorable{Type: t, Attr: a}] = col
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	col := c.m[Colorable{Type: t, Attr: a}]
	if col == nil {
		return s
	}
	return col.Sprint(s)
}
