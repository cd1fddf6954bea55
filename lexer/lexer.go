// Package lexer turns robot program source into a stream of tokens.
//
// The lexer is single-pass and never backtracks. It never aborts: an
// unrecognized character is reported to the diagnostic sink as an illegal
// character and skipped.
package lexer

import (
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/gosuda/tarobot/diag"
)

// Lexer holds the state of one tokenization run. It is not restartable.
type Lexer struct {
	src    string
	pos    int
	line   int
	sink   diag.Sink
	fold   cases.Caser
	errors int
}

// New creates a Lexer over src. Diagnostics go to sink; a nil sink drops them.
func New(src string, sink diag.Sink) *Lexer {
	if sink == nil {
		sink = diag.Discard
	}
	return &Lexer{
		src:  strings.TrimPrefix(src, "\uFEFF"),
		line: 1,
		sink: sink,
		fold: cases.Fold(),
	}
}

// Tokenize lexes src completely. The trailing EOF token is not included.
func Tokenize(src string, sink diag.Sink) []Token {
	return slices.Collect(New(src, sink).All())
}

// Line is the current 1-based line number.
func (l *Lexer) Line() int {
	return l.line
}

// Errors counts malformed literals seen so far. Illegal characters are not
// counted; they are recoverable.
func (l *Lexer) Errors() int {
	return l.errors
}

// All yields the remaining tokens up to, but excluding, EOF.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			t := l.Next()
			if t.Kind == EOF || !yield(t) {
				return
			}
		}
	}
}

// Next returns the next token. After the input is exhausted it keeps
// returning EOF.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		rest := l.src[l.pos:]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '\n':
			return l.lexNewLines()
		case strings.HasPrefix(rest, "..."):
			if !l.skipContinuation() {
				l.illegal()
			}
		case strings.HasPrefix(rest, "//"):
			l.skipComment()
		case strings.HasPrefix(rest, ":="):
			return l.emit(Assign, 2)
		case c == '=':
			return l.emit(Equal, 1)
		case c == '(':
			return l.emit(LeftBracket, 1)
		case c == ')':
			return l.emit(RightBracket, 1)
		case c == '[':
			return l.emit(LeftSquareBracket, 1)
		case c == ']':
			return l.emit(RightSquareBracket, 1)
		case isLetter(c):
			return l.lexIdent()
		case isDigit(c):
			return l.lexInt()
		default:
			l.illegal()
		}
	}
	return Token{Kind: EOF, Line: l.line}
}

func (l *Lexer) emit(kind Kind, width int) Token {
	t := Token{Kind: kind, Text: l.src[l.pos : l.pos+width], Line: l.line}
	l.pos += width
	return t
}

// lexNewLines folds a run of line breaks into one NEW_LINE token.
func (l *Lexer) lexNewLines() Token {
	start, line := l.pos, l.line
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\n':
			l.line++
		case '\r':
		default:
			return Token{Kind: NewLine, Text: l.src[start:l.pos], Line: line}
		}
		l.pos++
	}
	return Token{Kind: NewLine, Text: l.src[start:l.pos], Line: line}
}

// skipContinuation consumes "..." followed by one or more line breaks.
func (l *Lexer) skipContinuation() bool {
	i := l.pos + 3
	breaks := 0
	for i < len(l.src) && (l.src[i] == '\n' || l.src[i] == '\r') {
		if l.src[i] == '\n' {
			breaks++
		}
		i++
	}
	if breaks == 0 {
		return false
	}
	l.pos = i
	l.line += breaks
	return true
}

// skipComment consumes a // comment up to the line break, which is left for
// the NEW_LINE rule.
func (l *Lexer) skipComment() {
	if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
		l.pos += i
		return
	}
	l.pos = len(l.src)
}

func (l *Lexer) lexIdent() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kind, ok := Keyword(l.fold.String(text)); ok {
		return Token{Kind: kind, Text: text, Line: l.line}
	}
	return Token{Kind: Variable, Text: text, Line: l.line}
}

func (l *Lexer) lexInt() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	v, err := strconv.Atoi(text)
	if err != nil {
		l.errors++
		l.sink.Raise(diag.Diagnostic{
			Kind:    diag.SyntaxError,
			Line:    l.line,
			Message: "integer literal " + text + " is out of range",
		})
	}
	return Token{Kind: IntDecimal, Text: text, Int: v, Line: l.line}
}

func (l *Lexer) illegal() {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.sink.Raise(diag.Diagnostic{
		Kind:    diag.IllegalCharacter,
		Line:    l.line,
		Message: strconv.QuoteRune(r),
	})
	l.pos += size
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentPart(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
