// Package main is the entry point for stedit, a terminal text viewer with a
// scrolling cursor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/stedit/internal/app"
	"github.com/dshills/stedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	logFile string
	script  string
	dump    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	if cli.logFile != "" {
		w, closeLog, err := app.OpenLogOutput(cli.logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer closeLog()
		cli.LogOutput = w
	}

	application, err := app.New(cli.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if cli.dump {
		return dump(application, cli.script, os.Stdout)
	}

	if cli.script != "" {
		if err := application.RunScript(cli.script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// dump renders a single frame as text without opening the terminal.
func dump(application *app.Application, script string, out *os.File) int {
	application.Resize(application.HeadlessSize(int(out.Fd())))

	if script != "" {
		if err := application.RunScript(script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := application.Dump(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&cli.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&cli.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides logging.level")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file; overrides logging.file")
	flag.StringVar(&cli.script, "script", "", "Run a Lua script against the cursor before starting")
	flag.BoolVar(&cli.dump, "dump", false, "Print one frame to stdout instead of opening the terminal")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stedit - terminal viewer with a scrolling cursor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: h/j/k/l or arrows move, PgUp/PgDn page, 0/Home scroll home, q quits.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stedit notes.txt                       View a file\n")
		fmt.Fprintf(os.Stderr, "  stedit -c stedit.toml notes.txt        Use a config file\n")
		fmt.Fprintf(os.Stderr, "  stedit -dump -script walk.lua a.txt    Print the frame a script leaves\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("stedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if !validLogLevel(cli.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		os.Exit(1)
	}
	cli.File = flag.Arg(0)
	cli.WatchConfig = !cli.dump

	return cli
}

// validLogLevel accepts an empty level, which defers to the config file.
func validLogLevel(level string) bool {
	if level == "" {
		return true
	}
	_, ok := app.LookupLogLevel(level)
	return ok
}
