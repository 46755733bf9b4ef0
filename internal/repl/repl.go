// Package repl implements the interactive shell: a liner.State-backed line
// editor with history file and ":"-prefixed meta-commands, evaluating each
// line as a one-statement module sharing a single persistent Stack
// (eval.Session).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/breeze-lang/breeze/internal/builtins"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/eval"
	"github.com/breeze-lang/breeze/internal/parser"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// REPL is a liner-backed read-eval-print loop over a persistent
// eval.Session.
type REPL struct {
	session    *eval.Session
	version    string
	lastReport *apperrors.Report
}

// New builds a REPL whose built-ins Scope is the reference set of
// internal/builtins.
func New(version string) (*REPL, error) {
	scope, err := builtins.BuildScope(builtins.Reference)
	if err != nil {
		return nil, err
	}
	return &REPL{session: eval.NewSession(scope), version: version}, nil
}

func historyPath() string {
	return filepath.Join(os.TempDir(), ".breeze_history")
}

// Start runs the loop until EOF or :quit, writing output to out.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("breeze"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("breeze> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}

		r.evalLine(input, out)
	}

	if f, err := os.Create(historyPath()); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) evalLine(input string, out io.Writer) {
	r.lastReport = nil

	prog, err := parser.Parse(input)
	if err != nil {
		r.reportError(err, out)
		return
	}
	result, err := r.session.Eval(prog)
	if err != nil {
		r.reportError(err, out)
		return
	}
	if result == nil {
		return
	}
	v, err := result.Read()
	if err != nil {
		r.reportError(err, out)
		return
	}
	fmt.Fprintf(out, "%s %s\n", dim("=>"), yellow(v.String()))
}

// reportError prints err as colored text and records it so a following
// :json command can re-render it as a machine-readable diagnostic.
func (r *REPL) reportError(err error, out io.Writer) {
	fmt.Fprintf(out, "%s: %v\n", red("Error"), err)

	se, ok := err.(*apperrors.SourceError)
	if !ok {
		se = apperrors.New(apperrors.ExpressionError, "%v", err)
	}
	report := &apperrors.Report{}
	report.Add(se)
	r.lastReport = report
}

// handleCommand runs a ":"-prefixed meta-command, reporting whether the
// loop should stop.
func (r *REPL) handleCommand(cmd string, out io.Writer) bool {
	switch strings.Fields(cmd)[0] {
	case ":help", ":h":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help, :h   Show this help")
		fmt.Fprintln(out, "  :json       Print the last error as a JSON diagnostic")
		fmt.Fprintln(out, "  :quit, :q   Exit the REPL")
		return false
	case ":json":
		r.printLastErrorJSON(out)
		return false
	case ":quit", ":q":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		return false
	}
}

// printLastErrorJSON renders the most recent evalLine error as a JSON
// diagnostic array, or an empty array if the last line succeeded.
func (r *REPL) printLastErrorJSON(out io.Writer) {
	report := r.lastReport
	if report == nil {
		report = &apperrors.Report{}
	}
	data, err := report.ToJSON()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	fmt.Fprintln(out, string(data))
}
