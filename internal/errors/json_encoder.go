package errors

import (
	"encoding/json"
	"fmt"

	"github.com/breeze-lang/breeze/internal/token"
)

// SourceError is raised by any phase of the pipeline. Position
// is the zero value when the error has no meaningful source location (e.g.
// a registry-consistency ResolutionError).
type SourceError struct {
	Kind     Kind
	Position token.Position
	Message  string
	Path     string // absolute path of the module/file involved, if any
	Wrapped  error
}

func (e *SourceError) Error() string {
	if e.Position.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Position, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Wrapped
}

// New builds a SourceError without a source position.
func New(kind Kind, format string, args ...interface{}) *SourceError {
	return &SourceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds a SourceError carrying a source position.
func NewAt(kind Kind, pos token.Position, format string, args ...interface{}) *SourceError {
	return &SourceError{Kind: kind, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// encoded is the wire shape produced by SourceError.ToJSON, intended for a
// host to render diagnostics (cmd/breeze's `-json` mode).
type encoded struct {
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Row     int    `json:"row,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// ToJSON renders the error as the machine-readable diagnostic shape.
func (e *SourceError) ToJSON() ([]byte, error) {
	return json.Marshal(encoded{
		Kind:    string(e.Kind),
		Path:    e.Path,
		Row:     e.Position.Row,
		Column:  e.Position.Column,
		Message: e.Message,
	})
}
