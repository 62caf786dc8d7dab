package workspace

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// queryOps in match order: two-character operators before their one-character
// prefixes.
var queryOps = []string{"<>", "<=", ">=", "=", "<", ">"}

type operand struct {
	text  string
	num   float64
	isNum bool
}

// EvaluateQuery evaluates a definition-query expression against a feature's
// attributes. The supported grammar is one comparison,
// `<field|literal> <op> <field|literal>`, with operators =, <>, <, <=, >, >=;
// literals are numbers or 'single-quoted' strings. Referencing a field the
// feature does not have is an error. An empty expression selects everything.
func EvaluateQuery(expr string, attrs map[string]string) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true, nil
	}

	var op string
	at := -1
	for _, candidate := range queryOps {
		if i := strings.Index(expr, candidate); i >= 0 {
			op = candidate
			at = i
			break
		}
	}
	if at < 0 {
		return false, eris.Errorf("workspace: unsupported query %q", expr)
	}

	lhs, err := resolveOperand(expr[:at], attrs)
	if err != nil {
		return false, err
	}
	rhs, err := resolveOperand(expr[at+len(op):], attrs)
	if err != nil {
		return false, err
	}

	var cmp int
	if lhs.isNum && rhs.isNum {
		switch {
		case lhs.num < rhs.num:
			cmp = -1
		case lhs.num > rhs.num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(lhs.text, rhs.text)
	}

	switch op {
	case "=":
		return cmp == 0, nil
	case "<>":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return false, eris.Errorf("workspace: unsupported operator %q", op)
}

func resolveOperand(token string, attrs map[string]string) (operand, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return operand{}, eris.New("workspace: empty query operand")
	}

	if len(token) >= 2 && strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") {
		return operand{text: token[1 : len(token)-1]}, nil
	}

	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return operand{text: token, num: n, isNum: true}, nil
	}

	val, ok := attrs[token]
	if !ok {
		return operand{}, eris.Errorf("workspace: query references unknown field %q", token)
	}
	if n, err := strconv.ParseFloat(val, 64); err == nil {
		return operand{text: val, num: n, isNum: true}, nil
	}
	return operand{text: val}, nil
}
