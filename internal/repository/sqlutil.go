package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"itapp/internal/database"
	"itapp/internal/pkg/pagination"
)

// conditions collects WHERE fragments with positional arguments. Each
// fragment uses "?" for its single argument.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(expr string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, strings.Replace(expr, "?", "$"+strconv.Itoa(len(c.args)), 1))
}

func (c *conditions) raw(expr string) {
	c.clauses = append(c.clauses, expr)
}

func (c *conditions) onDay(col string, page pagination.Page) {
	if page.Date == nil {
		return
	}
	day := page.Date.UTC()
	c.add(col+" >= ?", day)
	c.add(col+" < ?", day.Add(24*time.Hour))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// window appends LIMIT/OFFSET placeholders and returns the clause with the
// full argument list.
func (c *conditions) window(page pagination.Page) (string, []any) {
	args := append(append([]any{}, c.args...), page.Take, page.Skip)
	n := len(args)
	return " LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n), args
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUnique(err error) bool {
	return errors.Is(err, database.ErrUniqueViolation)
}

func scanCount(row database.Row) (int, error) {
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
