// Command breeze is the CLI entry point: subcommand dispatch over the
// lexer/parser/evaluator pipeline, using stdlib flag for argument parsing
// and fatih/color to highlight diagnostic severities.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/builtins"
	"github.com/breeze-lang/breeze/internal/config"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/eval"
	"github.com/breeze-lang/breeze/internal/lexer"
	"github.com/breeze-lang/breeze/internal/module"
	"github.com/breeze-lang/breeze/internal/parser"
	"github.com/breeze-lang/breeze/internal/repl"
	"github.com/breeze-lang/breeze/internal/source"
)

// Version is set by ldflags during build.
var Version = "dev"

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
)

// jsonOutput selects machine-readable diagnostics (errors.Report.ToJSON)
// over colored human-readable text for the `run` command.
var jsonOutput = flag.Bool("json", false, "report run errors as a JSON array instead of colored text")

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		runFile(flag.Arg(1))
	case "repl":
		runREPL()
	case "ast":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		dumpAST(flag.Arg(1))
	case "tokens":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		dumpTokens(flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("breeze") + " - a small scripting language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  breeze <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>     Run a breeze program\n", cyan("run"))
	fmt.Printf("  %s            Start the interactive REPL\n", cyan("repl"))
	fmt.Printf("  %s <file>     Print the parsed AST\n", cyan("ast"))
	fmt.Printf("  %s <file>     Print the token stream\n", cyan("tokens"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Printf("  %s         Report `run` errors as a JSON array instead of colored text\n", cyan("-json"))
}

// loadConfig resolves entryFile to an absolute path and layers a sibling
// breeze.config.yaml over it if present.
func loadConfig(entryFile string) (source.Config, error) {
	abs, err := filepath.Abs(entryFile)
	if err != nil {
		return source.Config{}, err
	}

	cfgPath := filepath.Join(filepath.Dir(abs), config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return source.Config{}, err
		}
		cfg.Entrypoint = abs
		return cfg, nil
	}
	return source.Config{Entrypoint: abs}, nil
}

// fail reports a single compile-time error, either as a one-element JSON
// report (-json) or as colored text, and exits.
func fail(err error) {
	if *jsonOutput {
		var se *apperrors.SourceError
		switch e := err.(type) {
		case *apperrors.SourceError:
			se = e
		case *lexer.Error:
			se = apperrors.NewAt(apperrors.LexerError, e.Position, "%s", e.Message)
		case *parser.Error:
			se = apperrors.NewAt(apperrors.ParserError, e.Position, "%s", e.Message)
		default:
			se = apperrors.New(apperrors.ModuleError, "%v", err)
		}
		report := &apperrors.Report{}
		report.Add(se)
		emitJSON(report)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
	}
	os.Exit(1)
}

// emitJSON writes report to stdout as a JSON array.
func emitJSON(report *apperrors.Report) {
	out, err := report.ToJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return
	}
	fmt.Println(string(out))
}

func runFile(filename string) {
	cfg, err := loadConfig(filename)
	if err != nil {
		fail(err)
	}

	reg, err := module.BuildGraph(cfg.Entrypoint, cfg)
	if err != nil {
		fail(err)
	}
	sorted, err := module.TopologicalSort(reg)
	if err != nil {
		fail(err)
	}

	scope, err := builtins.BuildScope(builtins.Reference)
	if err != nil {
		fail(err)
	}

	report := eval.New(scope).Run(reg, sorted, cfg)
	if !report.Empty() {
		if *jsonOutput {
			emitJSON(report)
		} else {
			for _, e := range report.Errors {
				fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), e.Error())
			}
		}
		os.Exit(1)
	}
}

func runREPL() {
	r, err := repl.New(Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	r.Start(os.Stdout)
}

func dumpAST(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	prog, err := parser.Parse(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	fmt.Print(ast.Dump(prog))
}

func dumpTokens(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	toks, err := lexer.Tokenize(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	for _, t := range toks {
		fmt.Printf("%s %q @%s\n", cyan(t.Kind.String()), t.Lexeme, t.Position)
	}
}
