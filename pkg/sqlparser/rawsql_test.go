package sqlparser

import (
	"reflect"
	"testing"
)

func TestHasMultipleStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"empty", "", false},
		{"single statement", "SELECT * FROM users WHERE id = 1", false},
		{"trailing semicolon", "SELECT * FROM users WHERE id = 1;", false},
		{"trailing semicolons and whitespace", "SELECT 1;; \n", false},
		{"semicolon in single-quoted string", "SELECT * FROM users WHERE name = 'a; b'", false},
		{"semicolon in double-quoted string", `SELECT * FROM users WHERE name = "a; b"`, false},
		{"semicolon in backtick identifier", "SELECT * FROM `odd;name` WHERE id = 1", false},
		{"escaped quote before semicolon", "SELECT * FROM users WHERE name = 'it''s; here'", false},
		{"line comment after trailing semicolon", "SELECT 1; -- done", false},
		{"block comment after trailing semicolon", "SELECT 1; /* done */", false},
		{"stacked select", "SELECT 1; SELECT 2", true},
		{"classic injection", "SELECT * FROM users WHERE id = 1; DROP TABLE users--", true},
		{"statement after closed string", "SELECT 'a'; DELETE FROM users", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMultipleStatements(tt.sql); got != tt.want {
				t.Errorf("HasMultipleStatements(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}

func TestFindComments(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantKinds []CommentKind
	}{
		{"no comment", "SELECT * FROM users WHERE id = 1", nil},
		{"marker in string", "SELECT * FROM users WHERE name = '--x' AND tag = '#y'", nil},
		{"line comment", "SELECT 1 -- rest", []CommentKind{CommentLine}},
		{"block comment", "SELECT /* x */ 1", []CommentKind{CommentBlock}},
		{"hash comment", "SELECT 1 # rest", []CommentKind{CommentHash}},
		{"hint comment", "SELECT /*+ INDEX(t idx) */ * FROM t", []CommentKind{CommentHint}},
		{"template parameter is not a comment", "SELECT * FROM users WHERE id = #{id}", nil},
		{"hash without brace is a comment", "SELECT * FROM users # {id}", []CommentKind{CommentHash}},
		{"mixed", "SELECT /* a */ 1 -- b", []CommentKind{CommentBlock, CommentLine}},
		{"unclosed block comment", "SELECT 1 /* never closed", []CommentKind{CommentBlock}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := FindComments(tt.sql)
			var kinds []CommentKind
			for _, c := range comments {
				kinds = append(kinds, c.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.wantKinds) {
				t.Errorf("FindComments(%q) kinds = %v, want %v", tt.sql, kinds, tt.wantKinds)
			}
		})
	}
}

func TestFindComments_Text(t *testing.T) {
	comments := FindComments("SELECT 1 -- drop it\n")
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Text != "-- drop it" {
		t.Errorf("comment text = %q, want %q", comments[0].Text, "-- drop it")
	}
}
