package errors

import (
	"strings"
	"testing"

	"github.com/breeze-lang/breeze/internal/token"
)

func TestSourceErrorMessageWithPosition(t *testing.T) {
	err := NewAt(LexerError, token.Position{Row: 3, Column: 5}, "invalid token")
	if !strings.Contains(err.Error(), "3:5") {
		t.Errorf("Error() = %q, want it to mention position 3:5", err.Error())
	}
	if !strings.Contains(err.Error(), "LexerError") {
		t.Errorf("Error() = %q, want it to mention LexerError", err.Error())
	}
}

func TestSourceErrorMessageWithoutPosition(t *testing.T) {
	err := New(ResolutionError, "circular dependency including %s", "/a.br")
	if want := "ResolutionError: circular dependency including /a.br"; err.Error() != want {
		t.Errorf("Error() = %q, want %q with no position text", err.Error(), want)
	}
	if !strings.Contains(err.Error(), "circular dependency") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsCompileTime(t *testing.T) {
	compileTime := []Kind{PathError, ModuleError, ResolutionError, LexerError, ParserError}
	for _, k := range compileTime {
		if !IsCompileTime(k) {
			t.Errorf("IsCompileTime(%s) = false, want true", k)
		}
	}
	runtime := []Kind{NameError, TypeError, ValueError, ParameterError, ExpressionError, ImportError}
	for _, k := range runtime {
		if IsCompileTime(k) {
			t.Errorf("IsCompileTime(%s) = true, want false", k)
		}
	}
}

func TestReportCollectsErrors(t *testing.T) {
	var r Report
	if !r.Empty() {
		t.Fatalf("new report should be empty")
	}
	r.Add(New(NameError, "unbound variable %q", "x"))
	r.Add(nil)
	if r.Empty() {
		t.Fatalf("report should not be empty after Add")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("report.Errors = %d, want 1 (nil add should be ignored)", len(r.Errors))
	}
}

func TestSourceErrorToJSON(t *testing.T) {
	err := NewAt(ValueError, token.Position{Row: 1, Column: 1}, "division by zero")
	data, jsonErr := err.ToJSON()
	if jsonErr != nil {
		t.Fatalf("ToJSON() error: %v", jsonErr)
	}
	if !strings.Contains(string(data), "ValueError") {
		t.Errorf("ToJSON() = %s, want it to contain ValueError", data)
	}
}
