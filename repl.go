package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/compiler"
	"github.com/AmrAfifiy/kotlin/internal/config"
)

const (
	historyFile = ".firres_history"
	prompt      = "firres> "
)

const helpText = `commands:
  :load <fixture>...     resolve fixtures into a fresh session
  :decls                 list the loaded declarations
  :classids <decl>       annotation classes of a declaration
  :bind <decl>           argument bindings of a declaration's annotations
  :contracts             resolved contracts
  :diagnostics           diagnostics of the current session
  :summary               resolution summary
  :help                  this text
  :quit                  leave
`

var replCmd = &cobra.Command{
	Use:   "repl [fixture]...",
	Short: "Inspect fixtures interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		r := &repl{cfg: cfg, out: cmd.OutOrStdout()}
		if len(args) > 0 {
			r.load(cmd.Context(), args)
		}
		return r.loop(cmd.Context())
	},
}

type repl struct {
	cfg    *config.Config
	out    io.Writer
	result compiler.Result
}

func (r *repl) loop(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprint(r.out, "type :help for commands\n")
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			break
		}
		if err != nil {
			// Ctrl+C drops the current line
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if r.handle(ctx, line) {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// handle runs one command and reports whether the loop should end.
func (r *repl) handle(ctx context.Context, line string) (exit bool) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	if cmd != ":load" && cmd != ":help" && cmd != ":quit" && cmd != ":exit" && r.result.Session() == nil {
		fmt.Fprintln(r.out, "nothing loaded, use :load <fixture>")
		return false
	}

	switch cmd {
	case ":help":
		fmt.Fprint(r.out, helpText)

	case ":quit", ":exit":
		return true

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(r.out, "usage: :load <fixture>...")
			return false
		}
		r.load(ctx, fields[1:])

	case ":decls":
		for _, sym := range r.result.Symbols {
			fmt.Fprintf(r.out, "%s (%s)\n", sym, sym.Phase())
		}

	case ":classids", ":bind":
		if len(fields) != 2 {
			fmt.Fprintf(r.out, "usage: %s <decl>\n", cmd)
			return false
		}
		var lines []string
		var err error
		if cmd == ":classids" {
			lines, err = compiler.ClassIds(ctx, r.result.Session(), fields[1])
		} else {
			lines, err = compiler.Bindings(ctx, r.result.Session(), fields[1])
		}
		if err != nil {
			colors.RED.Fprintln(r.out, err)
			return false
		}
		r.print(lines)

	case ":contracts":
		r.print(compiler.Contracts(r.result.Symbols))

	case ":diagnostics":
		r.result.Session().Diagnostics().EmitAll(r.out)

	case ":summary":
		r.result.Pipeline.PrintSummary(r.out)

	default:
		fmt.Fprintln(r.out, "unknown command. Type :help for help.")
	}
	return false
}

func (r *repl) load(ctx context.Context, files []string) {
	result := compiler.Compile(ctx, &compiler.Options{
		Files:     files,
		Config:    r.cfg,
		Debug:     debug,
		LogFormat: compiler.ANSI,
	})
	fmt.Fprint(r.out, result.Output)
	if result.Session() == nil {
		return
	}
	r.result = result
	colors.GREEN.Fprintf(r.out, "✓ %d declaration(s) loaded\n", len(result.Symbols))
}

func (r *repl) print(lines []string) {
	if len(lines) == 0 {
		colors.GREY.Fprintln(r.out, "(none)")
		return
	}
	for _, l := range lines {
		fmt.Fprintln(r.out, l)
	}
}
