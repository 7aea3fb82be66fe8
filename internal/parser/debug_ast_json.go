package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/lupuchard/inko/internal/ast"
)

// WalkAST recursively traverses an AST and serializes it into a machine-centric map structure.
// This output is designed for stability, canonical representation, and tool-chain consumption.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		expressions := make([]interface{}, len(n.Expressions))
		for i, e := range n.Expressions {
			expressions[i] = WalkAST(e)
		}
		return map[string]interface{}{
			"type":        "Program",
			"expressions": expressions,
		}

	case *ast.IntegerLiteral:
		return map[string]interface{}{
			"type":   "IntegerLiteral",
			"token":  n.TokenLiteral(),
			"value":  n.Value,
			"line":   n.Token.Line,
			"column": n.Token.Column,
		}

	case *ast.FloatLiteral:
		return map[string]interface{}{
			"type":   "FloatLiteral",
			"token":  n.TokenLiteral(),
			"value":  n.Value,
			"line":   n.Token.Line,
			"column": n.Token.Column,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":   "StringLiteral",
			"token":  n.TokenLiteral(),
			"value":  n.Value,
			"line":   n.Token.Line,
			"column": n.Token.Column,
		}

	case *ast.ArrayLiteral:
		elements := make([]interface{}, len(n.Elements))
		for i, el := range n.Elements {
			elements[i] = WalkAST(el)
		}
		return map[string]interface{}{
			"type":     "ArrayLiteral",
			"elements": elements,
			"line":     n.Token.Line,
			"column":   n.Token.Column,
		}

	case *ast.HashLiteral:
		type pair struct {
			Key   interface{} `json:"key"`
			Value interface{} `json:"value"`
		}
		pairs := make([]pair, 0, len(n.Pairs))
		for _, p := range n.Pairs {
			pairs = append(pairs, pair{Key: WalkAST(p.Key), Value: WalkAST(p.Value)})
		}
		return map[string]interface{}{
			"type":   "HashLiteral",
			"pairs":  pairs,
			"line":   n.Token.Line,
			"column": n.Token.Column,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.String(), nil
}
