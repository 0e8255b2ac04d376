// rpgkit is a character workbench for tabletop RPG content: it loads a Lua
// content pack (or the built-in starter set) and lets you build, level and
// equip a character, then save it as JSON or YAML.
// Usage: rpgkit [--version] [--plain] [--script <file>] [--trace] [--format json|yaml] [content_directory]
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nathoo/rpgkit/catalog"
	"github.com/nathoo/rpgkit/cli"
	"github.com/nathoo/rpgkit/config"
	"github.com/nathoo/rpgkit/dice"
	"github.com/nathoo/rpgkit/loader"
	"github.com/nathoo/rpgkit/logger"
	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/session"
	"github.com/nathoo/rpgkit/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: rpgkit [--version] [--plain] [--script <file>] [--trace] [--format json|yaml] [content_directory]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	plain := false
	trace := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("rpgkit %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--format", "--content":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n%s\n", args[i], usage)
				os.Exit(1)
			}
			i++
			switch args[i-1] {
			case "--script":
				scriptFile = args[i]
			case "--format":
				cfg.Format = args[i]
			case "--content":
				cfg.ContentDir = args[i]
			}
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			cfg.ContentDir = args[i]
		}
	}

	format := entity.Format(strings.ToLower(cfg.Format))
	if !format.Structured() {
		fmt.Fprintf(os.Stderr, "Unsupported save format %q (use json or yaml)\n", cfg.Format)
		os.Exit(1)
	}

	useTUI := scriptFile == "" && !plain && isTerminal()

	// The TUI owns the terminal, so without a log file logging is silenced.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else if useTUI {
		logOut = io.Discard
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, logOut)

	cat := catalog.Default()
	if cfg.ContentDir != "" {
		cat, err = loader.Load(cfg.ContentDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
			os.Exit(1)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess, err := session.New(cat, dice.New(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		os.Exit(1)
	}

	// Script mode: read commands from a file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(sess, cfg.SaveDir, format)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if !useTUI {
		c := cli.New(sess, cfg.SaveDir, format)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(sess, cfg.SaveDir, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
