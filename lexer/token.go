package lexer

import "fmt"

type Kind int

const (
	EOF Kind = iota
	NewLine
	Variable
	IntDecimal
	Equal
	Assign
	LeftBracket
	RightBracket
	LeftSquareBracket
	RightSquareBracket

	keywordStart
	True
	False
	Boolean
	CBoolean
	Int
	CInt
	Map
	Inc
	Dec
	Not
	Or
	Gt
	Lt
	While
	Do
	If
	Else
	Step
	Right
	Left
	Back
	Look
	Proc
	Bar
	Emp
	Set
	Clr
	keywordEnd
)

var kindNames = [...]string{
	EOF:                "EOF",
	NewLine:            "NEW_LINE",
	Variable:           "VARIABLE",
	IntDecimal:         "INT_DECIMAL",
	Equal:              "EQUAL",
	Assign:             "ASSIGN",
	LeftBracket:        "LEFT_BRACKET",
	RightBracket:       "RIGHT_BRACKET",
	LeftSquareBracket:  "LEFT_SQUARE_BRACKET",
	RightSquareBracket: "RIGHT_SQUARE_BRACKET",
	True:               "TRUE",
	False:              "FALSE",
	Boolean:            "BOOLEAN",
	CBoolean:           "CBOOLEAN",
	Int:                "INT",
	CInt:               "CINT",
	Map:                "MAP",
	Inc:                "INC",
	Dec:                "DEC",
	Not:                "NOT",
	Or:                 "OR",
	Gt:                 "GT",
	Lt:                 "LT",
	While:              "WHILE",
	Do:                 "DO",
	If:                 "IF",
	Else:               "ELSE",
	Step:               "STEP",
	Right:              "RIGHT",
	Left:               "LEFT",
	Back:               "BACK",
	Look:               "LOOK",
	Proc:               "PROC",
	Bar:                "BAR",
	Emp:                "EMP",
	Set:                "SET",
	Clr:                "CLR",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// reserved maps case-folded words to keyword kinds.
var reserved = map[string]Kind{
	"true": True, "false": False,
	"boolean": Boolean, "cboolean": CBoolean,
	"int": Int, "cint": CInt, "map": Map,
	"inc": Inc, "dec": Dec, "not": Not, "or": Or, "gt": Gt, "lt": Lt,
	"while": While, "do": Do,
	"if": If, "else": Else,
	"step": Step, "right": Right, "left": Left, "back": Back, "look": Look,
	"proc": Proc, "bar": Bar, "emp": Emp, "set": Set, "clr": Clr,
}

// Keyword returns the keyword kind for an already folded word.
func Keyword(folded string) (Kind, bool) {
	k, ok := reserved[folded]
	return k, ok
}

// Token is one lexical unit. Text is the exact source text; Int holds the
// value of an INT_DECIMAL token.
type Token struct {
	Kind Kind
	Text string
	Int  int
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case EOF, NewLine:
		return t.Kind.String()
	case IntDecimal:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
}
