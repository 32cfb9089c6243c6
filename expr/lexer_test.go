package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := NewLexer("A & !B | (C ^ D)").Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TokenIdent, TokenAnd, TokenNot, TokenIdent, TokenOr,
		TokenLParen, TokenIdent, TokenXor, TokenIdent, TokenRParen,
		TokenEOF,
	}, tokenTypes(tokens))
}

func TestTokenizeQualifiedIdent(t *testing.T) {
	tokens, err := NewLexer("io.Reader & fmt.Stringer").Tokenize()
	require.NoError(t, err)

	require.Len(t, tokens, 4)
	assert.Equal(t, "io.Reader", tokens[0].Value)
	assert.Equal(t, "fmt.Stringer", tokens[2].Value)
}

func TestTokenizeTypeArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  string
	}{
		{"single", "From[uint32]", "uint32"},
		{"multiple", "Pair[int, string]", "int, string"},
		{"nested brackets", "Of[map[string][]byte]", "map[string][]byte"},
		{"function type", "Of[func(int, int) error]", "func(int, int) error"},
		{"trailing comma", "From[uint32,]", "uint32,"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := NewLexer(tc.input).Tokenize()
			require.NoError(t, err)
			require.Len(t, tokens, 3)
			assert.Equal(t, TokenIdent, tokens[0].Type)
			assert.Equal(t, TokenArgs, tokens[1].Type)
			assert.Equal(t, tc.args, tokens[1].Value)
			assert.Equal(t, TokenEOF, tokens[2].Type)
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := NewLexer("A & B").Tokenize()
	require.NoError(t, err)

	assert.Equal(t, 0, tokens[0].Position)
	assert.Equal(t, 2, tokens[1].Position)
	assert.Equal(t, 4, tokens[2].Position)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced bracket", "From[uint32"},
		{"stray character", "A $ B"},
		{"stray comma", "A , B"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLexer(tc.input).Tokenize()
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}
