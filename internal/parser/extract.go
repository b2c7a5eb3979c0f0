// Package parser extracts the import/export directives of a Dart source
// file into a plain ordered list. It is a one-shot pass: the ordering
// checks never see the source text, only the materialized directive
// records, so they can be unit-tested without a real file.
package parser

import (
	"dartlint/internal/directive"
	"dartlint/internal/source"
)

// Extract scans the file and returns its directives in lexical order.
// The scan is total: malformed or unterminated constructs end the pass
// early but never produce an error.
func Extract(f *source.File) directive.List {
	s := scanner{cursor: NewCursor(f)}
	return s.run()
}

type scanner struct {
	cursor Cursor
	// depth tracks brace nesting; directives only exist at the top level.
	depth int
	list  directive.List
}

func (s *scanner) run() directive.List {
	for !s.cursor.EOF() {
		b := s.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			s.cursor.Bump()

		case b == '/':
			if !s.skipComment() {
				s.cursor.Bump()
			}

		case b == '\'' || b == '"':
			s.skipString()

		case b == '{':
			s.depth++
			s.cursor.Bump()

		case b == '}':
			if s.depth > 0 {
				s.depth--
			}
			s.cursor.Bump()

		case isIdentStart(b):
			start := s.cursor.Mark()
			word := s.scanWord()
			if s.depth == 0 {
				switch word {
				case "import":
					s.scanDirective(directive.KindImport, start)
				case "export":
					s.scanDirective(directive.KindExport, start)
				}
			}

		default:
			s.cursor.Bump()
		}
	}
	return s.list
}

// scanDirective parses the remainder of an import/export declaration:
// the quoted URI, then everything through the terminating semicolon
// (configuration clauses and combinators are skipped, not interpreted).
// A keyword not followed by a string literal is not a directive.
func (s *scanner) scanDirective(kind directive.Kind, start Mark) {
	s.skipTrivia()

	quote := s.cursor.Peek()
	if quote != '\'' && quote != '"' {
		return
	}
	s.cursor.Bump()

	uriStart := s.cursor.Mark()
	for !s.cursor.EOF() && s.cursor.Peek() != quote && s.cursor.Peek() != '\n' {
		if s.cursor.Peek() == '\\' {
			s.cursor.Bump()
		}
		s.cursor.Bump()
	}
	uri := string(s.cursor.File.Content[uriStart:Mark(s.cursor.Off)])
	if !s.cursor.Eat(quote) {
		// Unterminated URI literal: keep what we saw, directive span
		// ends wherever the scan stopped.
		s.list = append(s.list, directive.Directive{
			Kind: kind,
			URI:  uri,
			Span: s.cursor.SpanFrom(start),
		})
		return
	}

	s.skipToSemicolon()
	s.list = append(s.list, directive.Directive{
		Kind: kind,
		URI:  uri,
		Span: s.cursor.SpanFrom(start),
	})
}

// skipToSemicolon consumes bytes through the next top-level ';', skipping
// comments and string literals (conditional-import URIs, show/hide names).
func (s *scanner) skipToSemicolon() {
	for !s.cursor.EOF() {
		switch b := s.cursor.Peek(); b {
		case ';':
			s.cursor.Bump()
			return
		case '/':
			if !s.skipComment() {
				s.cursor.Bump()
			}
		case '\'', '"':
			s.skipString()
		default:
			s.cursor.Bump()
		}
	}
}

// skipTrivia consumes whitespace and comments.
func (s *scanner) skipTrivia() {
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			s.cursor.Bump()
			continue
		}
		if b == '/' && s.skipComment() {
			continue
		}
		return
	}
}

// skipComment consumes a // line comment or a /* */ block comment (block
// comments nest in Dart). Returns false when the cursor is not at a
// comment.
func (s *scanner) skipComment() bool {
	b0, b1, ok := s.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}

	switch b1 {
	case '/':
		for !s.cursor.EOF() && s.cursor.Peek() != '\n' {
			s.cursor.Bump()
		}
		return true

	case '*':
		s.cursor.Bump()
		s.cursor.Bump()
		nesting := 1
		for !s.cursor.EOF() && nesting > 0 {
			c0, c1, ok := s.cursor.Peek2()
			if !ok {
				s.cursor.Bump()
				continue
			}
			switch {
			case c0 == '/' && c1 == '*':
				nesting++
				s.cursor.Bump()
				s.cursor.Bump()
			case c0 == '*' && c1 == '/':
				nesting--
				s.cursor.Bump()
				s.cursor.Bump()
			default:
				s.cursor.Bump()
			}
		}
		return true
	}
	return false
}

// skipString consumes a string literal starting at the opening quote.
// Handles escapes and triple-quoted strings; interpolated expressions are
// not parsed, so a quote inside ${...} ends the literal early. Good enough
// for keyword suppression, which is all the extractor needs strings for.
func (s *scanner) skipString() {
	quote := s.cursor.Bump()

	// Triple-quoted string.
	if b0, b1, ok := s.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		s.cursor.Bump()
		s.cursor.Bump()
		for !s.cursor.EOF() {
			if s.cursor.Peek() == '\\' {
				s.cursor.Bump()
				s.cursor.Bump()
				continue
			}
			if c0, c1, ok := s.cursor.Peek2(); ok && c0 == quote && c1 == quote {
				s.cursor.Bump()
				s.cursor.Bump()
				if s.cursor.Eat(quote) {
					return
				}
				continue
			}
			s.cursor.Bump()
		}
		return
	}

	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == '\\' {
			s.cursor.Bump()
			s.cursor.Bump()
			continue
		}
		if b == quote || b == '\n' {
			s.cursor.Bump()
			return
		}
		s.cursor.Bump()
	}
}

func (s *scanner) scanWord() string {
	start := s.cursor.Mark()
	for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	return string(s.cursor.File.Content[start:Mark(s.cursor.Off)])
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
