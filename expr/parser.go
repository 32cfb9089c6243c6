package expr

import (
	"fmt"
	"strings"
)

// ParseError describes a grammar mismatch at a byte offset in the input.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Operator precedence, loosest binding first. NOT is handled as a prefix and
// binds tightest, matching Go's own expression precedence for &, ^ and |.
const (
	precLowest = iota
	precOr
	precXor
	precAnd
)

func precedence(t TokenType) int {
	switch t {
	case TokenOr:
		return precOr
	case TokenXor:
		return precXor
	case TokenAnd:
		return precAnd
	default:
		return precLowest
	}
}

// Parser consumes tokens produced by the lexer and builds an expression tree.
type Parser struct {
	tokens  []Token
	current int
}

// Parse parses a capability expression such as "Stringer & !(io.Reader | comparable)".
func Parse(src string) (Node, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens}
	node, err := p.parseBinary(precLowest + 1)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Offset: tok.Position, Msg: "unexpected " + tok.Type.String()}
	}
	return node, nil
}

// Assertion is a parsed "TYPE: EXPR" pair. The type expression is kept as
// verbatim source text for later resolution against a package scope.
type Assertion struct {
	TypeExpr string
	Expr     Node
}

// ParseAssertion parses the full assertion form "TYPE: EXPR". The split is at
// the first colon outside brackets and parentheses, so map and function types
// in the type position pass through unharmed.
func ParseAssertion(src string) (*Assertion, error) {
	colon := topLevelColon(src)
	if colon < 0 {
		return nil, &ParseError{Offset: len(src), Msg: "missing ':' between type and expression"}
	}

	typeExpr := strings.TrimSpace(src[:colon])
	if typeExpr == "" {
		return nil, &ParseError{Offset: 0, Msg: "missing type before ':'"}
	}

	node, err := Parse(src[colon+1:])
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Offset += colon + 1
		}
		return nil, err
	}

	return &Assertion{TypeExpr: typeExpr, Expr: node}, nil
}

// parseBinary parses a (possibly single-operand) chain of binary operators
// with precedence climbing. Operators of equal precedence associate left.
func (p *Parser) parseBinary(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		prec := precedence(tok.Type)
		if prec < minPrec {
			return left, nil
		}
		p.current++

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenAnd:
			left = AndExpr{Left: left, Right: right}
		case TokenXor:
			left = XorExpr{Left: left, Right: right}
		case TokenOr:
			left = OrExpr{Left: left, Right: right}
		}
	}
}

// parseUnary parses any number of leading '!' before an operand. Double
// negation is absorbed: only an odd count wraps the operand in a negation.
func (p *Parser) parseUnary() (Node, error) {
	bangs := 0
	for p.peek().Type == TokenNot {
		bangs++
		p.current++
	}

	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if bangs%2 == 1 {
		return NotExpr{Operand: operand}, nil
	}
	return operand, nil
}

// parsePrimary parses a capability leaf or a parenthesized sub-expression.
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenLParen:
		p.current++
		inner, err := p.parseBinary(precLowest + 1)
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRParen {
			return nil, &ParseError{Offset: closing.Position, Msg: "missing ')'"}
		}
		p.current++
		return inner, nil

	case TokenIdent:
		p.current++
		leaf := Leaf{Name: tok.Value}
		if args := p.peek(); args.Type == TokenArgs {
			p.current++
			parsed, err := splitTypeArgs(args.Value, args.Position)
			if err != nil {
				return nil, err
			}
			leaf.Args = parsed
		}
		return leaf, nil

	case TokenEOF:
		return nil, &ParseError{Offset: tok.Position, Msg: "missing operand"}

	default:
		return nil, &ParseError{Offset: tok.Position, Msg: "unexpected " + tok.Type.String()}
	}
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: -1}
	}
	return p.tokens[p.current]
}

// splitTypeArgs splits bracketed type-argument text on top-level commas.
// A trailing comma is accepted; an empty list is not.
func splitTypeArgs(raw string, pos int) ([]string, error) {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, raw[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, raw[start:])

	out := make([]string, 0, len(args))
	for i, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			// only the final segment may be empty (trailing comma)
			if i == len(args)-1 && len(out) > 0 {
				continue
			}
			return nil, &ParseError{Offset: pos, Msg: "empty type argument"}
		}
		out = append(out, a)
	}
	return out, nil
}

// topLevelColon returns the index of the first ':' outside brackets and
// parentheses, or -1.
func topLevelColon(src string) int {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
