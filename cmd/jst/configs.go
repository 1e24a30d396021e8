package main

import (
	"fmt"
	"io"
	"os"

	"github.com/g2crowd/json-schema-tools/encode"
	"github.com/g2crowd/json-schema-tools/format"
	"github.com/g2crowd/json-schema-tools/schema"
	"github.com/g2crowd/json-schema-tools/source"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/scott-cotton/cli"
)

const dirEnv = "JST_SCHEMA_DIR"

type MainConfig struct {
	Dir     string `cli:"name=d aliases=dir desc='schema directory (default $JST_SCHEMA_DIR or .)'"`
	Color   bool   `cli:"name=color desc='encode with color'"`
	WireOut bool   `cli:"name=wire desc='output json in compact format'"`
	Indent  int    `cli:"name=indent desc='spaces per nesting level'"`
	Verbose bool   `cli:"name=v desc='log resolution details'"`
	Metrics bool   `cli:"name=metrics desc='print reader metrics to stderr when done'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *format.Format

	metrics *prometheus.Registry
	src     *source.Dir

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) format() format.Format {
	var f format.Format
	if cfg.Y {
		f = format.YAMLFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
		encode.EncodeWire(cfg.WireOut),
		encode.Indent(cfg.Indent),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether output to w is colored: when -color is given,
// or when it is not mentioned and w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) dir() string {
	if cfg.Dir != "" {
		return cfg.Dir
	}
	if d := os.Getenv(dirEnv); d != "" {
		return d
	}
	return "."
}

func (cfg *MainConfig) source() (*source.Dir, error) {
	if cfg.src != nil {
		return cfg.src, nil
	}
	src, err := source.NewDir(cfg.dir(), source.WithLogger(theLog))
	if err != nil {
		return nil, err
	}
	cfg.src = src
	return src, nil
}

func (cfg *MainConfig) reader() (*schema.Reader, error) {
	src, err := cfg.source()
	if err != nil {
		return nil, err
	}
	opts := []schema.ReaderOption{
		schema.WithScope(schema.ScopePrivate),
		schema.WithLogger(theLog),
	}
	if cfg.Metrics {
		cfg.metrics = prometheus.NewRegistry()
		opts = append(opts, schema.WithMetrics(cfg.metrics))
	}
	return schema.NewReader(src, opts...), nil
}

func (cfg *MainConfig) writeMetrics(w io.Writer) error {
	if cfg.metrics == nil {
		return nil
	}
	mfs, err := cfg.metrics.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

type ReadConfig struct {
	*MainConfig
	All bool `cli:"name=a aliases=all desc='read all schemas'"`

	Read *cli.Command
}

type ListConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='only list schemas for which this expression is true'"`

	List *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Lines bool `cli:"name=lines desc='show a line diff of the encoded documents'"`

	Diff *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}
