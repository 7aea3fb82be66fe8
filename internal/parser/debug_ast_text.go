package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/lupuchard/inko/internal/ast"
)

// RenderASTAsText produces a human-centric, indented representation of the AST.
// It is optimized for debugging nesting and pair structure.
func RenderASTAsText(node ast.Node, indent int) string {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return "nil"
	}

	sp := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		var sb strings.Builder
		for i, e := range n.Expressions {
			if i > 0 {
				sb.WriteString("\n")
			}
			// Root level expressions start at indent 0
			sb.WriteString(RenderASTAsText(e, 0))
		}
		return sb.String()

	case *ast.IntegerLiteral:
		return sp + n.String()

	case *ast.FloatLiteral:
		return sp + n.String()

	case *ast.StringLiteral:
		return sp + n.String()

	case *ast.ArrayLiteral:
		var sb strings.Builder
		sb.WriteString(sp + "[\n")
		for _, el := range n.Elements {
			sb.WriteString(RenderASTAsText(el, indent+1))
			sb.WriteString("\n")
		}
		sb.WriteString(sp + "]")
		return sb.String()

	case *ast.HashLiteral:
		var sb strings.Builder
		sb.WriteString(sp + "{\n")
		for _, p := range n.Pairs {
			sb.WriteString(RenderASTAsText(p.Key, indent+1))
			sb.WriteString(":\n")
			sb.WriteString(RenderASTAsText(p.Value, indent+2))
			sb.WriteString("\n")
		}
		sb.WriteString(sp + "}")
		return sb.String()

	default:
		return fmt.Sprintf("%s<%T>", sp, n)
	}
}
