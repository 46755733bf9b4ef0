package parser

import (
	"fmt"

	"github.com/breeze-lang/breeze/internal/token"
)

// Error is raised for any syntactic violation.
type Error struct {
	Position token.Position
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser error at %s: %s", e.Position, e.Message)
}

func newError(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
}
