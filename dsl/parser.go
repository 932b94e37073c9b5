package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node for a deck outline file.
type Document struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Title  StringLiteral  `parser:"Newline* 'deck' @String"`
	Slides []*SlideNode   `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// SlideNode groups the blocks of one slide.
type SlideNode struct {
	Blocks []*BlockNode `parser:"'slide' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// BlockNode is one content block statement. Exactly one branch is set.
type BlockNode struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Title   *TextNode      `parser:"  'title' @@"`
	Para    *TextNode      `parser:"| 'para' @@"`
	Bullets *ListNode      `parser:"| 'bullets' @@"`
	Columns *ColumnsNode   `parser:"| 'columns' @@"`
	Table   *TableNode     `parser:"| 'table' @@"`
	Spacer  *SpacerNode    `parser:"| 'spacer' @@"`
	Break   bool           `parser:"| @'break'"`
}

// TextNode is a styled single-string command (title/para).
type TextNode struct {
	Style string        `parser:"@Ident"`
	Text  StringLiteral `parser:"@String"`
}

// ListNode is a styled list of string items; an empty string is a blank line.
type ListNode struct {
	Style string          `parser:"@Ident"`
	Items []StringLiteral `parser:"'{' Newline* ( @String Newline* )* '}'"`
}

// ColumnsNode holds side-by-side columns of items.
type ColumnsNode struct {
	Style   string        `parser:"@Ident"`
	Columns []*ColumnNode `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

// ColumnNode is one column of a columns block.
type ColumnNode struct {
	Items []StringLiteral `parser:"'column' '{' Newline* ( @String Newline* )* '}'"`
}

// TableNode declares a table with optional header style and column ratios.
type TableNode struct {
	Style       string     `parser:"@Ident"`
	HeaderStyle string     `parser:"( 'header' @Ident )?"`
	Ratios      []string   `parser:"( 'ratios' '[' @Number+ ']' )?"`
	Rows        []*RowNode `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

// RowNode is one table row.
type RowNode struct {
	Cells []StringLiteral `parser:"'row' '{' Newline* ( @String Newline* )* '}'"`
}

// SpacerNode inserts fixed vertical space; the number may carry a unit suffix.
type SpacerNode struct {
	Height string `parser:"@Number"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a deck outline from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a deck outline from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
