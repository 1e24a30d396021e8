package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/g2crowd/json-schema-tools/encode"
	"github.com/g2crowd/json-schema-tools/ir"
)

var out io.Writer = os.Stderr

// Logf writes a debug line to stderr. *ir.Node arguments are rendered as
// compact JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			s, err := nodeString(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x.Type)
				continue
			}
			args[i] = s
		}
	}
	fmt.Fprintf(out, msg, args...)
}

func nodeString(n *ir.Node) (res string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	s := encode.MustString(n, encode.EncodeWire(true))
	return s[:len(s)-1], nil
}
