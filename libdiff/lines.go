package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

type Line struct {
	Op   Op
	Text string
}

// Lines returns a line by line diff of from and to.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// WriteLines writes lines with a one character prefix, colored when
// colors is set.
func WriteLines(w io.Writer, lines []Line, colors bool) error {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	for _, l := range lines {
		s := l.Op.Prefix() + l.Text
		if colors {
			switch l.Op {
			case Delete:
				s = del.Sprint(s)
			case Insert:
				s = ins.Sprint(s)
			}
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
