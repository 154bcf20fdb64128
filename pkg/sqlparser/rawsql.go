package sqlparser

import "unicode"

// Raw-text analysis for properties a parser cannot see: statement separators
// are consumed by statement splitting, and comments are stripped from the AST.
// These helpers scan the SQL text directly, tracking string-literal state so
// markers inside '...', "..." and `...` never count.

// CommentKind classifies a comment found in raw SQL text.
type CommentKind int

const (
	// CommentLine is a standard -- comment running to end of line.
	CommentLine CommentKind = iota
	// CommentBlock is a /* ... */ comment.
	CommentBlock
	// CommentHash is a MySQL # comment running to end of line.
	CommentHash
	// CommentHint is an optimizer hint of the form /*+ ... */.
	CommentHint
)

// Comment is one comment occurrence in raw SQL text.
type Comment struct {
	Kind CommentKind
	Text string
}

// HasMultipleStatements reports whether the SQL text contains a statement
// separator followed by more content. Trailing semicolons, semicolons inside
// string literals, and trailing comments after a final semicolon do not count.
func HasMultipleStatements(sql string) bool {
	var scan quoteScanner
	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		if skip := scan.step(runes, i); skip {
			i++
			continue
		}
		if scan.inString() {
			continue
		}
		if runes[i] == ';' && !isTrailingSemicolon(runes, i) {
			return true
		}
	}
	return false
}

// isTrailingSemicolon reports whether only whitespace, further semicolons,
// and comments follow the semicolon at position idx.
func isTrailingSemicolon(runes []rune, idx int) bool {
	for i := idx + 1; i < len(runes); i++ {
		c := runes[i]
		if unicode.IsSpace(c) || c == ';' {
			continue
		}
		if c == '-' && i+1 < len(runes) && runes[i+1] == '-' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				i++
			}
			i++
			continue
		}
		return false
	}
	return true
}

// FindComments returns every comment in the SQL text in order of appearance.
// The #{...} form is skipped: it is template parameter syntax, not a comment.
func FindComments(sql string) []Comment {
	var comments []Comment
	var scan quoteScanner
	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		if skip := scan.step(runes, i); skip {
			i++
			continue
		}
		if scan.inString() {
			continue
		}
		c := runes[i]

		if c == '-' && i+1 < len(runes) && runes[i+1] == '-' {
			end := lineEnd(runes, i+2)
			comments = append(comments, Comment{Kind: CommentLine, Text: string(runes[i:end])})
			i = end - 1
			continue
		}
		if c == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			kind := CommentBlock
			if i+2 < len(runes) && runes[i+2] == '+' {
				kind = CommentHint
			}
			end := blockEnd(runes, i+2)
			comments = append(comments, Comment{Kind: kind, Text: string(runes[i:end])})
			i = end - 1
			continue
		}
		if c == '#' {
			if i+1 < len(runes) && runes[i+1] == '{' {
				if close := closingBrace(runes, i+2); close > 0 {
					i = close
					continue
				}
			}
			end := lineEnd(runes, i+1)
			comments = append(comments, Comment{Kind: CommentHash, Text: string(runes[i:end])})
			i = end - 1
			continue
		}
	}
	return comments
}

func lineEnd(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == '\n' || runes[i] == '\r' {
			return i
		}
	}
	return len(runes)
}

func blockEnd(runes []rune, from int) int {
	for i := from; i+1 < len(runes); i++ {
		if runes[i] == '*' && runes[i+1] == '/' {
			return i + 2
		}
	}
	return len(runes)
}

// closingBrace returns the index of the } ending a #{...} parameter, or -1
// when none exists on the same line.
func closingBrace(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		switch runes[i] {
		case '}':
			return i
		case '\n', '\r':
			return -1
		}
	}
	return -1
}

// quoteScanner tracks string-literal state over a rune scan. step must be
// called once per position; it returns true when the scanner consumed the
// following rune as a doubled escape and the caller should advance past it.
type quoteScanner struct {
	single   bool
	double   bool
	backtick bool
}

func (s *quoteScanner) inString() bool {
	return s.single || s.double || s.backtick
}

func (s *quoteScanner) step(runes []rune, i int) (skipNext bool) {
	switch runes[i] {
	case '\'':
		if s.double || s.backtick {
			return false
		}
		if s.single && i+1 < len(runes) && runes[i+1] == '\'' {
			return true
		}
		s.single = !s.single
	case '"':
		if s.single || s.backtick {
			return false
		}
		if s.double && i+1 < len(runes) && runes[i+1] == '"' {
			return true
		}
		s.double = !s.double
	case '`':
		if s.single || s.double {
			return false
		}
		if s.backtick && i+1 < len(runes) && runes[i+1] == '`' {
			return true
		}
		s.backtick = !s.backtick
	}
	return false
}
