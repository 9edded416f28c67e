// Command star-ls is the CLI entry point for the Starlark language server
// core. `serve` runs server.Loop with an empty mailbox: nothing reads
// stdin or writes stdout, and published diagnostics are only logged to
// stderr. Feeding the mailbox from LSP JSON-RPC is an external transport
// concern (§1 Non-goals) left for a layer above this one to supply.
//
// Usage:
//
//	star-ls serve [-workers N] [-log-level LEVEL]
//	star-ls dump <file.star>
//	star-ls version
//
// Grounded on cmd/gotypst/main.go's os.Args-switch subcommand dispatch
// (flag.FlagSet per subcommand, no CLI framework).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/star-ls/star-ls-go/cache"
	"github.com/star-ls/star-ls-go/parser"
	"github.com/star-ls/star-ls-go/server"
	"github.com/star-ls/star-ls-go/syntax"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		printVersion()
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`star-ls - Starlark language server parsing core

Usage:
  star-ls serve [-workers N] [-log-level LEVEL]
  star-ls dump <file.star>
  star-ls help
  star-ls version

Commands:
  serve    Run the event loop + worker pool (no LSP transport attached)
  dump     Parse a file and print its debug tree dump (§6)
  help     Show this help message
  version  Show version information

Options (serve):
  -workers     Worker pool size (default: runtime.NumCPU()-1, clamped >=1)
  -log-level   One of debug, info, warn, error (default: info)`)
}

func printVersion() {
	fmt.Println("star-ls version 0.1.0")
}

func runDump(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("dump: expected exactly one file argument")
	}
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	tree, diags := parser.Parse(string(text))
	fmt.Print(syntax.DumpString(tree, diags))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	workers := fs.Int("workers", defaultWorkers(), "worker pool size")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c := cache.New()
	mailbox := server.NewMailbox(64)
	publish := func(path string, diags []server.PublishedDiagnostic) {
		log.Info("publish_diagnostics", "path", path, "count", len(diags))
	}
	loop := server.NewLoop(c, mailbox, *workers, publish, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The LSP transport (decoding framed JSON-RPC from stdin into
	// server.EditorMessage values on mailbox.EditorIn, and encoding
	// published diagnostics back out to stdout) is out of scope per §1;
	// this seam exists so that wiring can be dropped in without touching
	// server.Loop itself.
	loop.Run(ctx)
	return nil
}

func defaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
