// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue. Fragments are written with '?' markers and numbered
// into $n placeholders when the statement is rendered.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is one AND-ed predicate of a WHERE clause.
type Condition struct {
	sql  string
	args []any
}

func Eq(column string, value any) Condition {
	return Condition{sql: column + " = ?", args: []any{value}}
}

func IsNull(column string) Condition {
	return Condition{sql: column + " IS NULL"}
}

// Expr is a raw predicate; each '?' consumes one of args in order.
func Expr(sql string, args ...any) Condition {
	return Condition{sql: sql, args: args}
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	limit     int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// ForUpdate locks the selected rows until the enclosing transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var s statement
	s.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	s.where(b.where)
	if b.limit > 0 {
		s.raw(" LIMIT " + strconv.Itoa(b.limit))
	}
	if b.forUpdate {
		s.raw(" FOR UPDATE")
	}
	return s.render()
}

type assignment struct {
	column string
	expr   string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	return b.SetExpr(column, "?", value)
}

// SetExpr assigns a raw expression such as "?::jsonb" or "NOW()".
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var s statement
	s.raw("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.raw(", ")
		}
		s.fragment(set.column+" = "+set.expr, set.args)
	}
	s.where(b.where)
	return s.render()
}

// statement accumulates '?' fragments and their bound values.
type statement struct {
	buf  strings.Builder
	args []any
	want int
}

func (s *statement) raw(sql string) {
	s.buf.WriteString(sql)
}

func (s *statement) fragment(sql string, args []any) {
	s.buf.WriteString(sql)
	s.args = append(s.args, args...)
	s.want += strings.Count(sql, "?")
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.raw(" WHERE ")
		} else {
			s.raw(" AND ")
		}
		s.fragment(c.sql, c.args)
	}
}

func (s *statement) render() (string, []any, error) {
	if s.want != len(s.args) {
		return "", nil, fmt.Errorf("statement has %d placeholders but %d args", s.want, len(s.args))
	}

	src := s.buf.String()
	var out strings.Builder
	out.Grow(len(src) + len(s.args))
	n := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '?' {
			out.WriteByte(src[i])
			continue
		}
		n++
		out.WriteString("$" + strconv.Itoa(n))
	}
	return out.String(), s.args, nil
}
