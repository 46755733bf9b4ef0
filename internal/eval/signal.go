package eval

import "github.com/breeze-lang/breeze/internal/value"

// ctrlKind tags the control-flow signal threaded through statement
// execution instead of Go errors: break/continue/return are never conflated with runtime errors.
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// ctrl is the result of executing a statement: either nothing special
// happened (ctrlNone), or a break/continue/return is propagating toward the
// construct that catches it (the enclosing loop for break/continue, the
// active call frame for return).
type ctrl struct {
	kind  ctrlKind
	value *value.Container // payload of a return; nil otherwise
}

var none = ctrl{kind: ctrlNone}
