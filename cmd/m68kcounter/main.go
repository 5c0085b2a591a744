// Package main implements a 68000 assembly size and cycle counter
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Urethramancer/m68kcounter/assembler"
	"github.com/Urethramancer/m68kcounter/format"
	"github.com/grimdork/climate/arg"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var errUsage = errors.New("no input file given and stdin is a terminal")

type optionFlags struct {
	input   string
	include string
	depth   int
	lines   int

	json    bool
	pretty  bool
	color   bool
	noColor bool

	debug   bool
	quiet   bool
	version bool
}

func main() {
	ctx := app.Context()

	opts, args, err := readArguments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		args.PrintHelp()
		os.Exit(1)
	}

	if opts.version {
		fmt.Printf("m68kcounter version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := createLogger(opts.debug, opts.quiet)
	logger.Debug("m68kcounter", log.String("version", buildinfo.Version(version, commit, date)))

	if err := run(ctx, logger, opts, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Printf("usage: m68kcounter [options] [FILE]\n\n")
			args.PrintHelp()
			os.Exit(1)
		}
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal("Counting failed", log.Err(err))
	}
}

func readArguments() (optionFlags, *arg.Options, error) {
	var opts optionFlags

	args := arg.New("m68kcounter")
	args.SetDefaultHelp(true)
	args.SetOption(arg.GroupDefault, "j", "json", "Output JSON.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "p", "pretty", "Pretty print JSON output.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "i", "include", "Comma separated output elements: text,timings,bytes,totals.", format.DefaultInclude, false, arg.VarString, nil)
	args.SetOption(arg.GroupDefault, "c", "color", "Force colored output.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "n", "nocolor", "Disable colored output.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "", "depth", "Maximum nesting of macro expansions and repeat blocks.", assembler.NewOptions().MaxDepth, false, arg.VarInt, nil)
	args.SetOption(arg.GroupDefault, "", "lines", "Maximum number of lines produced by expansions.", assembler.NewOptions().MaxLines, false, arg.VarInt, nil)
	args.SetOption(arg.GroupDefault, "d", "debug", "Enable debug logging.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "q", "quiet", "Only log errors.", false, false, arg.VarBool, nil)
	args.SetOption(arg.GroupDefault, "V", "version", "Print the version and exit.", false, false, arg.VarBool, nil)
	args.SetPositional("FILE", "Assembly source file to analyze, - or none to read stdin.", "", false, arg.VarString)

	err := args.Parse(os.Args)
	if err != nil && !errors.Is(err, arg.ErrNoArgs) {
		return opts, args, fmt.Errorf("parsing arguments: %w", err)
	}

	opts.input = args.GetPosString("FILE")
	opts.include = args.GetString("include")
	opts.depth = args.GetInt("depth")
	opts.lines = args.GetInt("lines")
	opts.json = args.GetBool("json")
	opts.pretty = args.GetBool("pretty")
	opts.color = args.GetBool("color")
	opts.noColor = args.GetBool("nocolor")
	opts.debug = args.GetBool("debug")
	opts.quiet = args.GetBool("quiet")
	opts.version = args.GetBool("version")
	return opts, args, nil
}

// run reads the input, resolves it and writes the formatted result to w.
func run(ctx context.Context, logger *log.Logger, opts optionFlags, w io.Writer) error {
	include, err := format.ParseInclude(opts.include)
	if err != nil {
		return fmt.Errorf("parsing include list: %w", err)
	}

	src, err := readInput(opts.input)
	if err != nil {
		return err
	}

	asm := assembler.New(logger, assembler.Options{
		MaxDepth: opts.depth,
		MaxLines: opts.lines,
	})
	lines, err := asm.ParseContext(ctx, src)
	if err != nil {
		return fmt.Errorf("parsing source: %w", err)
	}
	// parsing may have finished just as the context was cancelled
	if err := ctx.Err(); err != nil {
		return err
	}

	totals := assembler.CalculateTotals(lines)
	formatter := newFormatter(opts, include)
	if err := formatter.Format(w, lines, totals); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

// readInput reads the named file, or stdin for "-" or an empty name.
func readInput(name string) (string, error) {
	if name != "" && name != "-" {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("reading file '%s': %w", name, err)
		}
		return string(data), nil
	}

	if name == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errUsage
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func newFormatter(opts optionFlags, include format.Include) format.Formatter {
	if opts.json {
		return format.JSON{
			Pretty:  opts.pretty,
			Include: include,
		}
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	switch {
	case opts.noColor:
		color = false
	case opts.color:
		color = true
	}
	return format.PlainText{
		Color:   color,
		Include: include,
	}
}

// createLogger creates a logger with appropriate settings
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
