// Package cli implements the harness command line: flag parsing, file
// plumbing and the mapping of failures to exit codes.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/plugin"
	"github.com/cwbudde/algo-harness/plugin/builtin"
	"github.com/cwbudde/algo-harness/plugin/goplugin"
)

// Version is reported by --version.
const Version = "0.2.0"

const usageText = `harness usage:
  harness --help
  harness --version
  harness [--log-level debug|info|warn|error] <command> [options]

Commands:
  dump-params --plugin <path>
  render      --plugin <path> --in <dry.wav> --outdir <dir> --sr <hz> --bs <samples> --ch <channels> --case <case.json>
  analyze     --dry <dry.wav> --wet <wet.wav> --outdir <dir> [--auto-align [true|false]] [--null [true|false]] [--max-lag <samples>] [--lag-method direct|fft]
  gen-signals --outdir <dir> [--sr <hz>] [--seconds <s>] [--channels <n>] [--seed <n>]

Plugin paths:
  builtin:passthrough | builtin:gain | builtin:delay   reference plugins
  <file>.so                                            Go plugin exporting NewHarnessPlugin
`

// app carries what every command needs.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	formats []plugin.Format
}

// Run executes the command line args (without the program name) and
// returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	formats := []plugin.Format{
		builtin.NewFormat(builtin.DefaultRegistry()),
		goplugin.NewFormat(),
	}
	return run(args, stdout, stderr, formats)
}

func run(args []string, stdout, stderr io.Writer, formats []plugin.Format) int {
	a := &app{stdout: stdout, stderr: stderr, formats: formats}

	err := a.dispatch(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usageText)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return errkind.ExitCode(err)
}

func (a *app) dispatch(args []string) error {
	fs := newFlagSet("harness")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	version := fs.Bool("version", false, "print the version and exit")

	if len(args) == 0 {
		return flag.ErrHelp
	}
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if *version {
		fmt.Fprintf(a.stdout, "harness %s\n", Version)
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return errkind.New(errkind.Usage, "invalid --log-level: %s", *logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) == 0 {
		return flag.ErrHelp
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "dump-params":
		return a.dumpParams(cmdArgs)
	case "render":
		return a.render(cmdArgs)
	case "analyze":
		return a.analyze(cmdArgs)
	case "gen-signals":
		return a.genSignals(cmdArgs)
	default:
		return errkind.New(errkind.Usage, "unknown subcommand: %s", cmd)
	}
}

func (a *app) formatManager() *plugin.FormatManager {
	return plugin.NewFormatManager(a.formats, plugin.WithLogger(a.logger))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args into fs, rejecting positional arguments and
// missing required flags. Boolean flags also take a separate true/false
// value (--null true).
func parseFlags(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(joinBoolValues(fs, args)); err != nil {
		return usageError(err)
	}
	if fs.NArg() > 0 {
		return errkind.New(errkind.Usage, "unexpected positional argument: %s", fs.Arg(0))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range required {
		if !set[name] {
			return errkind.New(errkind.Usage, "missing required option --%s", name)
		}
	}
	return nil
}

// joinBoolValues rewrites "--name true|false" into "--name=true|false" for
// boolean flags of fs.
func joinBoolValues(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
			continue
		}

		f := fs.Lookup(strings.TrimLeft(arg, "-"))
		if f == nil || i+1 >= len(args) {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); !ok || !bf.IsBoolFlag() {
			out = append(out, args[i+1])
			i++
			continue
		}

		next := args[i+1]
		if strings.EqualFold(next, "true") || strings.EqualFold(next, "false") {
			out[len(out)-1] = arg + "=" + strings.ToLower(next)
			i++
		}
	}
	return out
}

func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errkind.Wrap(errkind.Usage, err, "invalid arguments")
}

// isScheme reports whether path addresses a builtin plugin rather than a file.
func isScheme(path string) bool {
	return strings.HasPrefix(strings.ToLower(path), builtin.Scheme)
}
