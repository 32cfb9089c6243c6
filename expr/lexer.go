package expr

import "unicode"

// Lexer scans a capability expression and produces tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
	err      error
}

// NewLexer returns a new Lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens.
// It returns the first lexical error encountered, if any.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) && l.err == nil {
		currentPos := l.position
		switch c := l.input[l.position]; {
		case c == '&':
			l.addToken(TokenAnd, "&", currentPos)
			l.position++

		case c == '|':
			l.addToken(TokenOr, "|", currentPos)
			l.position++

		case c == '^':
			l.addToken(TokenXor, "^", currentPos)
			l.position++

		case c == '!':
			l.addToken(TokenNot, "!", currentPos)
			l.position++

		case c == '(':
			l.addToken(TokenLParen, "(", currentPos)
			l.position++

		case c == ')':
			l.addToken(TokenRParen, ")", currentPos)
			l.position++

		case c == '[':
			// Type-argument text is captured verbatim up to the matching
			// bracket. The contents are type-checked later, not lexed here.
			l.lexArgs(currentPos)

		case isWhitespace(c):
			l.position++

		case isIdentStart(c):
			l.lexIdent(currentPos)

		default:
			l.err = &ParseError{Offset: currentPos, Msg: "unexpected character " + string(c)}
		}
	}
	if l.err != nil {
		return nil, l.err
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexIdent scans a capability name. Qualified names such as io.Reader are
// lexed as a single identifier.
func (l *Lexer) lexIdent(startPos int) {
	start := l.position
	for l.position < len(l.input) {
		c := l.input[l.position]
		if !isIdentStart(c) && !isDigit(c) && c != '.' {
			break
		}
		l.position++
	}
	l.addToken(TokenIdent, l.input[start:l.position], startPos)
}

// lexArgs scans from an opening '[' to its matching ']', tracking nested
// brackets and parentheses so that type text like map[string][]byte or
// func(int, int) error passes through intact.
func (l *Lexer) lexArgs(startPos int) {
	depth := 0
	for i := l.position; i < len(l.input); i++ {
		switch l.input[i] {
		case '[', '(':
			depth++
		case ')':
			depth--
		case ']':
			depth--
			if depth == 0 {
				l.addToken(TokenArgs, l.input[l.position+1:i], startPos)
				l.position = i + 1
				return
			}
		}
	}
	l.err = &ParseError{Offset: startPos, Msg: "unbalanced '[' in type arguments"}
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

func isWhitespace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
