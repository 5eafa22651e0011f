package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	m "gooze.dev/pkg/morph/internal/model"
)

const (
	tokEOF = iota
	tokIdent
	tokKeyword
	tokNumber
	tokString
	tokPunct
)

var scriptKeywords = []string{
	"var", "let", "const", "function", "if", "else", "while", "for",
	"return", "break", "continue", "true", "false", "null", "this",
}

var scriptPunctuation = []string{
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "?", ":",
	"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", ">>>=",
	"||", "&&", "|", "^", "&", "==", "!=", "===", "!==",
	"<", "<=", ">", ">=", "<<", ">>", ">>>",
	"+", "-", "*", "/", "%", "!", "~", "++", "--",
}

type scriptToken struct {
	kind   int
	text   string
	start  int
	end    int
	line   int
	column int
}

var (
	lexerOnce     sync.Once
	compiledLexer *lexmachine.Lexer
	errLexer      error
)

// scriptLexer returns the shared, compiled lexer. Compilation happens once.
func scriptLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer := lexmachine.NewLexer()

		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`//[^\n]*`), skip)
		lexer.Add([]byte(`/\*([^*]|\r|\n|(\*+([^*/]|\r|\n)))*\*+/`), skip)

		for _, keyword := range scriptKeywords {
			lexer.Add([]byte(keyword), token(tokKeyword))
		}

		lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), token(tokIdent))
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?([eE][\+\-]?[0-9]+)?`), token(tokNumber))
		lexer.Add([]byte(`0[xX][0-9a-fA-F]+`), token(tokNumber))
		lexer.Add([]byte(`"([^"\\\n]|\\.)*"`), token(tokString))
		lexer.Add([]byte(`'([^'\\\n]|\\.)*'`), token(tokString))

		punctuation := append([]string(nil), scriptPunctuation...)
		sort.Strings(punctuation)

		for _, punct := range punctuation {
			lexer.Add([]byte(escapeLiteral(punct)), token(tokPunct))
		}

		if err := lexer.Compile(); err != nil {
			errLexer = fmt.Errorf("compile script lexer: %w", err)
			return
		}

		compiledLexer = lexer
	})

	return compiledLexer, errLexer
}

// escapeLiteral escapes every byte so the literal is matched verbatim.
func escapeLiteral(literal string) string {
	return "\\" + strings.Join(strings.Split(literal, ""), "\\")
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func token(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
		return s.Token(kind, string(match.Bytes), match), nil
	}
}

// tokenize splits src into tokens, terminated by a tokEOF token.
func tokenize(src []byte) ([]scriptToken, error) {
	lexer, err := scriptLexer()
	if err != nil {
		return nil, err
	}

	scanner, err := lexer.Scanner(src)
	if err != nil {
		return nil, fmt.Errorf("create scanner: %w", err)
	}

	tokens := make([]scriptToken, 0, len(src)/3+1)

	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			return nil, lexError(err)
		}

		t, ok := tok.(*lexmachine.Token)
		if !ok {
			continue
		}

		tokens = append(tokens, scriptToken{
			kind:   t.Type,
			text:   string(t.Lexeme),
			start:  t.TC,
			end:    t.TC + len(t.Lexeme),
			line:   t.StartLine,
			column: t.StartColumn,
		})
	}

	line, column := 1, 1
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		line, column = last.line, last.column+len(last.text)
	}

	tokens = append(tokens, scriptToken{kind: tokEOF, start: len(src), end: len(src), line: line, column: column})

	return tokens, nil
}

func lexError(err error) error {
	var unconsumed *machines.UnconsumedInput
	if errors.As(err, &unconsumed) {
		// The Start fields point at the offending character, the Fail fields past it.
		text := ""
		if start := unconsumed.StartTC; start < len(unconsumed.Text) {
			_, size := utf8.DecodeRune(unconsumed.Text[start:])
			text = string(unconsumed.Text[start : start+size])
		}

		return &m.ParseError{
			Line:    unconsumed.StartLine,
			Column:  unconsumed.StartColumn,
			Offset:  unconsumed.StartTC,
			Message: fmt.Sprintf("unexpected character %q", text),
		}
	}

	return &m.ParseError{Message: err.Error()}
}
