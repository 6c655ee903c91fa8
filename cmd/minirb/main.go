package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	minirb "github.com/minirb-lang/minirb"
)

const appName = "minirb"

var banner = fmt.Sprintf("minirb %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", minirb.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(minirb.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s <command> [args]

Commands:
  run FILE   Execute a script
  repl       Start the interactive session
  version    Print the version
`, appName)
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "%s run: expected exactly one file\n", appName)
		return 2
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ip := minirb.NewRuntime()
	if _, err := ip.EvalSource(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, red(minirb.WrapErrorWithSource(err, string(src)).Error()))
		return 1
	}
	return 0
}

func cmdRepl(_ []string) int {
	cfg := loadConfig()
	colorize := cfg.Color
	paint := func(f func(string) string, s string) string {
		if colorize {
			return f(s)
		}
		return s
	}

	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(cfg.historyPath()); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(cfg.historyPath()); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := minirb.NewRuntime()

	for {
		code, ok := readStatement(ln, cfg.Prompt, cfg.ContPrompt)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		v, err := ip.EvalSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, paint(red, minirb.WrapErrorWithSource(err, code).Error()))
			continue
		}
		fmt.Println(paint(blue, minirb.FormatValue(v)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement collects input lines until every def block opened so far is
// balanced by an end. The parser itself is all-or-nothing, so "need more
// input" is decided here by tracking block depth in the buffered text.
func readStatement(ln *liner.State, prompt, cont string) (string, bool) {
	var buf strings.Builder
	p := prompt
	for {
		line, err := ln.Prompt(p)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				// Ctrl+C: drop whatever was buffered and start over.
				buf.Reset()
				p = prompt
				continue
			}
			return "", false // io.EOF (Ctrl+D) or terminal failure
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if minirb.BlockDepth(buf.String()) == 0 {
			return buf.String(), true
		}
		p = cont
	}
}
