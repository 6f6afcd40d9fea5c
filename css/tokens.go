package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	lex "github.com/tdewolff/parse/v2/css"
)

// token is a lexed CSS token detached from lexer buffer.
type token struct {
	tt   lex.TokenType
	text string
}

func (t token) is(tt lex.TokenType) bool {
	return t.tt == tt
}

// tokenize lexes a property value, comments are dropped.
func tokenize(s string) []token {
	l := lex.NewLexer(parse.NewInputString(s))
	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case lex.ErrorToken:
			return toks
		case lex.CommentToken:
			continue
		}
		toks = append(toks, token{tt: tt, text: string(data)})
	}
}

// opens returns true for tokens which open a nested block.
func opens(t token) bool {
	return t.tt == lex.FunctionToken || t.tt == lex.LeftParenthesisToken || t.tt == lex.LeftBracketToken
}

// closes returns true for tokens which close a nested block.
func closes(t token) bool {
	return t.tt == lex.RightParenthesisToken || t.tt == lex.RightBracketToken
}

// trimSpace drops leading and trailing whitespace tokens.
func trimSpace(toks []token) []token {
	for len(toks) > 0 && toks[0].is(lex.WhitespaceToken) {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].is(lex.WhitespaceToken) {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// splitTop splits token list on separator tokens outside of any parentheses.
// Separators inside function arguments are not split points.
func splitTop(toks []token, sep lex.TokenType) [][]token {
	var (
		parts [][]token
		depth int
		start int
	)
	for i, t := range toks {
		switch {
		case opens(t):
			depth++
		case closes(t):
			if depth > 0 {
				depth--
			}
		case t.tt == sep && depth == 0:
			parts = append(parts, trimSpace(toks[start:i]))
			start = i + 1
		}
	}
	return append(parts, trimSpace(toks[start:]))
}

// words splits token list on top level whitespace, so "rgba(0, 0, 0, 1) 2px"
// becomes two words.
func words(toks []token) []string {
	var out []string
	for _, part := range splitTop(trimSpace(toks), lex.WhitespaceToken) {
		if len(part) > 0 {
			out = append(out, joinTokens(part))
		}
	}
	return out
}

// joinTokens serializes tokens back to text collapsing whitespace runs.
func joinTokens(toks []token) string {
	var sb strings.Builder
	for _, t := range trimSpace(toks) {
		if t.tt == lex.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// call is a function call found in token stream.
type call struct {
	name string    // function name without "("
	args [][]token // comma separated arguments
}

// nextCall extracts function call starting at toks[i] which must be a
// FunctionToken. It returns index right after closing parenthesis or false
// when parentheses are not balanced.
func nextCall(toks []token, i int) (call, int, bool) {
	c := call{name: strings.TrimSuffix(toks[i].text, "(")}
	depth := 1
	for j := i + 1; j < len(toks); j++ {
		switch {
		case opens(toks[j]):
			depth++
		case closes(toks[j]):
			depth--
			if depth == 0 {
				inner := trimSpace(toks[i+1 : j])
				if len(inner) > 0 {
					c.args = splitTop(inner, lex.CommaToken)
				}
				return c, j + 1, true
			}
		}
	}
	return c, len(toks), false
}

// Words splits value on top level whitespace, function arguments are kept
// together: "rgba(0, 0, 0, 1) 2px" -> ["rgba(0, 0, 0, 1)", "2px"].
func Words(s string) []string {
	return words(tokenize(s))
}
