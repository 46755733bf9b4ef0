package builtins

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/value"
)

var stdin = bufio.NewReader(os.Stdin)

// Reference is the minimal built-in set supplementing the core: console I/O
// and the type() truth table. The core evaluator is agnostic to this set; a
// host may pass any other []Decl to BuildScope instead.
var Reference = []Decl{
	Function{Name: "_builtin_print", Arity: 1, Host: builtinPrint},
	Function{Name: "_builtin_read_line", Arity: 0, Host: builtinReadLine},
	Function{Name: "_builtin_str", Arity: 1, Host: builtinStr},
	Function{Name: "_builtin_num", Arity: 1, Host: builtinNum},
	Function{Name: "_builtin_bool", Arity: 1, Host: builtinBool},
	Function{Name: "_builtin_type", Arity: 1, Host: builtinType},
}

func builtinPrint(args []value.Value) (value.Value, error) {
	fmt.Println(args[0].String())
	return value.Null{}, nil
}

func builtinReadLine(args []value.Value) (value.Value, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return value.String(""), nil
	}
	return value.String(strings.TrimRight(line, "\r\n")), nil
}

func builtinStr(args []value.Value) (value.Value, error) {
	return value.String(args[0].String()), nil
}

func builtinNum(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case value.Boolean:
		if v {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	case value.String:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, apperrors.New(apperrors.ValueError, "cannot convert %q to number", string(v))
		}
		return value.Number(f), nil
	default:
		return nil, apperrors.New(apperrors.TypeError, "cannot convert %s to number", v.TypeName())
	}
}

func builtinBool(args []value.Value) (value.Value, error) {
	return value.Boolean(value.Truthy(args[0])), nil
}

// builtinType reports the runtime type name of its argument.
func builtinType(args []value.Value) (value.Value, error) {
	switch args[0].TypeName() {
	case "null", "number", "string", "boolean", "list", "tuple", "object", "function":
		return value.String(args[0].TypeName()), nil
	default:
		return value.String("unknown"), nil
	}
}
