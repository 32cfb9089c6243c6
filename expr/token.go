package expr

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenAnd    // &
	TokenOr     // |
	TokenXor    // ^
	TokenNot    // !
	TokenLParen // (
	TokenRParen // )
	TokenArgs   // bracketed type-argument text, brackets stripped
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenAnd:
		return "&"
	case TokenOr:
		return "|"
	case TokenXor:
		return "^"
	case TokenNot:
		return "!"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenArgs:
		return "ARGS"
	default:
		return "ILLEGAL"
	}
}

// Token is a single lexed token with its byte offset in the input.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}
