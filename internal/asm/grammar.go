// Package asm implements an assembler and a disassembler for CHIP-8
// programs using the mnemonic syntax of the interpreter debug trace.
package asm

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// source is a parsed assembly source file.
type source struct {
	Lines []*line `@@*`
}

// line is an optional label followed by an optional statement.
type line struct {
	Pos lexer.Position

	Label     *string    `( @Ident ":" )?`
	Statement *statement `@@? EOL`
}

// statement is an instruction or a directive with its operands.
type statement struct {
	Pos lexer.Position

	Mnemonic string     `@( Directive | Ident )`
	Operands []*operand `( @@ ( "," @@ )* )?`
}

// operand is an indirect index "[I]", a number or a name. Names are
// registers, the special operands I, DT, ST, K, F, B or labels.
type operand struct {
	Pos lexer.Position

	Indirect *string `  @( "[" Ident "]" )`
	Number   *string `| @Number`
	Name     *string `| @Ident`
}

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Directive", Pattern: `\.[a-zA-Z]+`},
	{Name: "Number", Pattern: `\$[0-9a-fA-F]+|0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[:,\[\]]`},
})

var parser = participle.MustBuild[source](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)
