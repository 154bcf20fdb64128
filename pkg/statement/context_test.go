package statement

import (
	"testing"

	"github.com/nsxbet/sql-guard/pkg/types"
)

type fakePage struct {
	number, size int64
}

func (p fakePage) PageNumber() int64 { return p.number }
func (p fakePage) PageSize() int64   { return p.size }

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext("SELECT 1")

	if ctx.SQL != "SELECT 1" {
		t.Errorf("SQL = %q", ctx.SQL)
	}
	if ctx.Stmt != nil {
		t.Error("Stmt should default to nil")
	}
	if ctx.Page != types.NoPageRequest {
		t.Errorf("Page should default to NoPageRequest, got %+v", ctx.Page)
	}
	if ctx.Page.Requested() {
		t.Error("default page must not count as a pagination request")
	}
}

func TestNewContext_Options(t *testing.T) {
	ctx := NewContext("SELECT * FROM users",
		WithStatementID("UserMapper.findAll"),
		WithLayer(types.LayerORM),
		WithPage(types.PageRequest{Offset: 20, RowCount: 10}),
	)

	if ctx.StatementID != "UserMapper.findAll" {
		t.Errorf("StatementID = %q", ctx.StatementID)
	}
	if ctx.Layer != types.LayerORM {
		t.Errorf("Layer = %v", ctx.Layer)
	}
	if !ctx.Page.Requested() {
		t.Error("explicit page should count as a pagination request")
	}
}

func TestContext_HasPageParam(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]any
		expected bool
	}{
		{
			name:     "nil params",
			params:   nil,
			expected: false,
		},
		{
			name:     "plain params",
			params:   map[string]any{"id": 42, "name": "x"},
			expected: false,
		},
		{
			name:     "page object among params",
			params:   map[string]any{"id": 42, "page": fakePage{number: 2, size: 20}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext("SELECT 1", WithParams(tt.params))
			if got := ctx.HasPageParam(); got != tt.expected {
				t.Errorf("HasPageParam() = %v, want %v", got, tt.expected)
			}
		})
	}
}
