// Package ast defines the node hierarchy produced by the (external,
// out-of-scope) wamon parser: expressions, statements, struct/method/
// function declarations, and the PackageUnit that groups them per package.
//
// Nothing in this package performs lexing or parsing. Tests and the
// internal/testscript helpers build these nodes directly by Go function
// call, exercising the interpreter against hand-built ASTs instead of
// source text.
package ast

import "strconv"

// Position is the source location a node was parsed from. The core never
// computes a Position itself; it only carries forward whatever value an
// (external) parser attached to a node, for use in error messages.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 && p.Column == 0 {
		return "?:?"
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is the base interface every AST node implements.
type Node interface {
	Pos() Position
	String() string
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// base embeds a Position and is embedded by every concrete node, giving
// each node a source location without depending on a concrete lexer token
// type.
type base struct {
	Position Position
}

func (b base) Pos() Position { return b.Position }
