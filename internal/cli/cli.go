// Package cli implements the jsonunpack command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/i18n"
	"github.com/reoring/jsonunpack/jsonvalue"
	"github.com/reoring/jsonunpack/shape"
)

// Version is reported by --version.
var Version = "0.1.0"

// Exit codes.
const (
	ExitOK       = 0
	ExitRejected = 1 // the document does not fit the shape or cannot be decoded
	ExitUsage    = 2
)

// CLI defines the command-line interface.
type CLI struct {
	Debug   bool             `help:"Enable debug logging." short:"d" env:"JSONUNPACK_DEBUG"`
	Lang    string           `help:"Message language." enum:"en,ja" default:"en" env:"JSONUNPACK_LANG"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Check  CheckCmd  `cmd:"" help:"Unpack a JSON or YAML document into a shape and print the result."`
	Schema SchemaCmd `cmd:"" help:"Print the JSON Schema of a shape."`
}

// CheckCmd decodes a document and unpacks it into a shape.
type CheckCmd struct {
	Shape      string `arg:"" help:"Target shape, e.g. 'optional<[]oneof<uint16,null>>'."`
	Input      string `help:"Path to the input document. Reads stdin when empty or '-'." short:"i"`
	Format     string `help:"Input format." enum:"auto,json,yaml" default:"auto"`
	Label      string `help:"Label reported in failures." default:"value"`
	MaxDepth   int    `help:"Maximum container nesting of the input (0 = unlimited)." default:"0"`
	Duplicates string `help:"Handling of duplicate object keys." enum:"error,warn,ignore" default:"error"`
	Driver     string `help:"JSON tokenizer." enum:"std,gojson" default:"std"`
}

// SchemaCmd prints the JSON Schema projection of a shape.
type SchemaCmd struct {
	Shape string `arg:"" help:"Target shape."`
}

// env carries the process streams into commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	log    *slog.Logger
}

// errRejected marks failures already reported on stdout.
var errRejected = errors.New("rejected")

type exitCode int

// Run parses args, executes the selected command and returns the process exit
// code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jsonunpack"),
		kong.Description("Unpack JSON values into exact, statically known shapes."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Vars{"version": "jsonunpack version " + Version},
	)
	if err != nil {
		fmt.Fprintf(stderr, "jsonunpack: %v\n", err)
		return ExitUsage
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "jsonunpack: %v\n", err)
		return ExitUsage
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(cli.Lang)
	logger.Debug("starting", "command", kctx.Command(), "lang", cli.Lang)

	err = kctx.Run(&env{stdin: stdin, stdout: stdout, log: logger})
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errRejected):
		return ExitRejected
	}
	fmt.Fprintf(stderr, "jsonunpack: %v\n", err)
	return ExitUsage
}

// Run executes the check command.
func (c *CheckCmd) Run(e *env) error {
	s, err := shape.Parse(c.Shape)
	if err != nil {
		return err
	}
	data, err := c.read(e.stdin)
	if err != nil {
		return err
	}
	opt, err := c.decodeOpt(e.log)
	if err != nil {
		return err
	}

	format := c.format()
	e.log.Debug("decoding", "format", format, "driver", opt.Driver, "bytes", len(data), "shape", s.Desc())
	var v any
	if format == "yaml" {
		v, err = jsonvalue.DecodeYAML(data, opt)
	} else {
		v, err = jsonvalue.Decode(data, opt)
	}
	if err != nil {
		if de, ok := jsonvalue.AsDecodeError(err); ok {
			e.log.Debug("decode failed", "code", de.Code, "path", de.Path)
			return reject(e.stdout, de)
		}
		return err
	}

	var out any
	if err := jsonunpack.Unpack(v, c.Label, &out, s); err != nil {
		if ue, ok := jsonunpack.AsError(err); ok {
			e.log.Debug("unpack failed", "code", ue.Code, "path", ue.Path)
			return reject(e.stdout, ue)
		}
		return err
	}
	return writeJSON(e.stdout, out)
}

func (c *CheckCmd) read(stdin io.Reader) ([]byte, error) {
	if c.Input == "" || c.Input == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(c.Input)
}

func (c *CheckCmd) format() string {
	if c.Format != "auto" {
		return c.Format
	}
	switch strings.ToLower(filepath.Ext(c.Input)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func (c *CheckCmd) decodeOpt(log *slog.Logger) (jsonvalue.DecodeOpt, error) {
	opt := jsonvalue.DecodeOpt{
		MaxDepth: c.MaxDepth,
		OnWarning: func(w *jsonvalue.DecodeError) {
			log.Warn(w.Message, "code", w.Code, "path", w.Path)
		},
	}
	switch c.Duplicates {
	case "error":
		opt.OnDuplicateKey = jsonvalue.Error
	case "warn":
		opt.OnDuplicateKey = jsonvalue.Warn
	case "ignore":
		opt.OnDuplicateKey = jsonvalue.Ignore
	default:
		return opt, fmt.Errorf("unknown duplicates policy %q", c.Duplicates)
	}
	switch c.Driver {
	case "std":
		opt.Driver = jsonvalue.DriverStd
	case "gojson":
		opt.Driver = jsonvalue.DriverGoJSON
	default:
		return opt, fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.MaxDepth < 0 {
		return opt, fmt.Errorf("max-depth must not be negative")
	}
	return opt, nil
}

// Run executes the schema command.
func (c *SchemaCmd) Run(e *env) error {
	d, err := jsonunpack.ParseDesc(c.Shape)
	if err != nil {
		return err
	}
	return writeJSON(e.stdout, d.JSONSchema())
}

func reject(w io.Writer, report any) error {
	if err := writeJSON(w, report); err != nil {
		return err
	}
	return errRejected
}

func writeJSON(w io.Writer, v any) error {
	b, err := jsonvalue.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
