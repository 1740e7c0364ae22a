package types

import (
	"strconv"
	"strings"
)

// MangleOperator returns the synthetic name an operator overload is
// registered and looked up under: __op_<op>_<type1>-<type2>-...
// The call operator does not use it: it is a struct method keyed
// CallOperatorMethod.
func MangleOperator(op string, operandTypes []Type) string {
	var sb strings.Builder
	sb.WriteString("__op_")
	sb.WriteString(op)
	sb.WriteString("_")
	for _, t := range operandTypes {
		sb.WriteString(t.Info())
		sb.WriteString("-")
	}
	return sb.String()
}

// MangleGlobal returns the post-merge qualified name of a package-level
// function, struct, or global variable: <package>$<name>. Operator overloads
// and lambdas use their own synthetic names instead (MangleOperator,
// MangleLambda) and never pass through this function.
func MangleGlobal(pkg, name string) string {
	return pkg + "$" + name
}

// MangleLambda returns the synthetic name of the n-th lambda lowered out of
// parent (parent is already a fully mangled name, e.g. "pkg$foo", or
// "pkg$foo$__lambda_2" for a lambda nested in another lambda).
func MangleLambda(parent string, n int) string {
	return parent + "$__lambda_" + strconv.Itoa(n)
}
