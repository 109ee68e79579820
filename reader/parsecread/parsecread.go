// Copyright © 2024 The lispread authors

/*
Package parsecread reads s-expressions for the sexpr model using a
goparsec combinator grammar.

	expr   := '(' <expr>* ')' | '#(' <expr>* ')' | ''' <expr>
	        | <number> | <string> | <bool> | <char> | <symbol>
	number := /[+-]?[0-9]+/ <fraction>? <exponent>?
	string := '"' ... '"'

It exists alongside the recursive descent reader for benchmark
comparison and covers a smaller surface: no radix prefixes, block or
datum comments, bracket lists or dispatch extensions.  Dotted pairs are
recognized by post-processing a lone dot symbol in list position.
*/
package parsecread

import (
	"fmt"

	"github.com/luthersystems/lispread/sexpr"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeVector
	nodeQExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeVector:  "VECTOR",
	nodeQExpr:   "QEXPR",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// Parse reads values for m from text and returns them.  The number of
// bytes read is returned along with any error encountered.
func Parse(m *sexpr.Model, text []byte) ([]*sexpr.SVal, int, error) {
	var vs []*sexpr.SVal
	s := parsec.NewScanner(text)
	parser := newParser(m)
	root, s := parser(s)
	for root != nil {
		v, err := getSVal(root)
		if err != nil {
			return vs, s.GetCursor(), err
		}
		if v != nil {
			vs = append(vs, v)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return vs, s.GetCursor(), fmt.Errorf("unexpected source text possibly starting: %s", b)
	}
	return vs, s.GetCursor(), nil
}

func newParser(m *sexpr.Model) parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openV := parsec.Atom("#(", "OPENV")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	boolean := parsec.Token(`#[tfTF]`, "BOOL")
	char := parsec.Token(`#\\(?:space|newline|\S)`, "CHAR")
	decimal := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	symbol := parsec.Token(`[~!@$%&*_+\-=:<>^.?/|\pL][~!@$%&*_+\-=:<>^.?/|.\pL0-9]*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(m, nodeTerm),
		boolean,
		char,
		parsec.String(),
		decimal,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexp := parsec.And(astNode(m, nodeSExpr), openP, exprList, closeP)
	vector := parsec.And(astNode(m, nodeVector), openV, exprList, closeP)
	qexpr := parsec.And(astNode(m, nodeQExpr), q, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		sexp,
		vector,
		qexpr,
	)
	return expr
}

func astNode(m *sexpr.Model, t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newNode(m, t, nodes)
	}
}

func newNode(m *sexpr.Model, typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanNodeList(nodes)
	if len(nodes) == 0 {
		return m.Nil()
	}
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	switch typ {
	case nodeTerm:
		return newTerm(m, nodes[0])
	case nodeSExpr:
		vs, err := childVals(nodes)
		if err != nil {
			return err
		}
		v, err := buildList(m, vs)
		if err != nil {
			return err
		}
		return v
	case nodeVector:
		vs, err := childVals(nodes)
		if err != nil {
			return err
		}
		return sexpr.Vector(vs...)
	case nodeQExpr:
		// Skip the leading quote terminal.
		v, ok := nodes[1].(*sexpr.SVal)
		if !ok {
			return fmt.Errorf("invalid quoted expression")
		}
		return m.List(m.Symbol("quote"), v)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func newTerm(m *sexpr.Model, node parsec.ParsecNode) parsec.ParsecNode {
	switch term := node.(type) {
	case string:
		// goparsec's String() parser unescapes the literal but leaves the
		// surrounding quotes in place.
		return sexpr.String(term[1 : len(term)-1])
	case *parsec.Terminal:
		switch term.Name {
		case "BOOL":
			if term.Value[1] == 't' || term.Value[1] == 'T' {
				return m.True()
			}
			return m.False()
		case "CHAR":
			name := term.Value[2:]
			switch name {
			case "space":
				return sexpr.Char(' ')
			case "newline":
				return sexpr.Char('\n')
			default:
				return sexpr.Char([]rune(name)[0])
			}
		case "DECIMAL":
			v, ok := m.Number(term.Value, 10)
			if !ok {
				return fmt.Errorf("bad number: %s", term.Value)
			}
			return v
		case "SYMBOL":
			return m.Symbol(term.Value)
		}
	}
	return fmt.Errorf("unexpected term: %v", node)
}

// buildList constructs a cons chain, recognizing a lone dot symbol before
// the final element as a dotted tail.
func buildList(m *sexpr.Model, vs []*sexpr.SVal) (*sexpr.SVal, error) {
	dot := m.Symbol(".")
	tailAt := -1
	for i, v := range vs {
		if !m.Eq(v, dot) {
			continue
		}
		if i == 0 {
			return nil, fmt.Errorf("expected something before '.' in list")
		}
		if i != len(vs)-2 {
			return nil, fmt.Errorf("unexpected '.' in list")
		}
		tailAt = i
	}
	if tailAt < 0 {
		return m.List(vs...), nil
	}
	l := vs[len(vs)-1]
	for i := tailAt - 1; i >= 0; i-- {
		l = sexpr.Cons(vs[i], l)
	}
	return l, nil
}

func childVals(nodes []parsec.ParsecNode) ([]*sexpr.SVal, error) {
	var vs []*sexpr.SVal
	for _, n := range nodes {
		switch n := n.(type) {
		case *sexpr.SVal:
			vs = append(vs, n)
		case error:
			return nil, n
		}
	}
	return vs, nil
}

func cleanNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			return []parsec.ParsecNode{node}, false
		case []parsec.ParsecNode:
			clean, ok := cleanNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

func getSVal(root parsec.ParsecNode) (*sexpr.SVal, error) {
	nodes, ok := cleanNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// Only whitespace or a comment was matched.
		return nil, nil
	}
	if !ok {
		return nil, nodes[0].(error)
	}
	v, ok := nodes[0].(*sexpr.SVal)
	if !ok {
		return nil, nil
	}
	return v, nil
}
