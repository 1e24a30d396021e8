package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Refs    bool
	Source  bool
	Inherit bool
	Cache   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Refs = boolEnv("JST_DEBUG_REFS")
	d.Source = boolEnv("JST_DEBUG_SOURCE")
	d.Inherit = boolEnv("JST_DEBUG_INHERIT")
	d.Cache = boolEnv("JST_DEBUG_CACHE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Refs() bool {
	return d.Refs
}
func Source() bool {
	return d.Source
}
func Inherit() bool {
	return d.Inherit
}
func Cache() bool {
	return d.Cache
}
