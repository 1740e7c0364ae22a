package script

import (
	"fmt"
	"io"

	"github.com/chloro-pn/wamon-go/executor"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
)

// registerPrint wires the two host-visible output builtins every program
// gets for free, the same shape as the teacher's Evaluator.Write/WriteLine
// over a configured io.Writer: print(string) writes as-is, println(string)
// appends a trailing newline. Both take exactly one string argument; a
// value of any other type is rejected by the signature check.
func registerPrint(ip *executor.Interpreter, out io.Writer, sig types.Type) {
	ip.RegisterHostFunc("print", &executor.HostFunc{
		Sig: sig,
		Call: func(args []value.Value) (value.Value, error) {
			fmt.Fprint(out, args[0].String())
			return value.NewVoid(), nil
		},
	})
	ip.RegisterHostFunc("println", &executor.HostFunc{
		Sig: sig,
		Call: func(args []value.Value) (value.Value, error) {
			fmt.Fprintln(out, args[0].String())
			return value.NewVoid(), nil
		},
	})
}
