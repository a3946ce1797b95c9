package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Page is a plain offset/limit window. Services fill in the defaults.
type Page struct {
	Offset int
	Limit  int
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// listQuery accumulates WHERE conditions with numbered placeholders.
type listQuery struct {
	query strings.Builder
	args  []interface{}
}

func newListQuery(base string) *listQuery {
	q := &listQuery{}
	q.query.WriteString(base)
	q.query.WriteString(" WHERE 1=1")
	return q
}

func (q *listQuery) arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *listQuery) eq(column string, value *int) {
	if value == nil {
		return
	}
	fmt.Fprintf(&q.query, " AND %s = %s", column, q.arg(*value))
}

// contains is a case-insensitive substring match.
func (q *listQuery) contains(column string, value *string) {
	if value == nil {
		return
	}
	fmt.Fprintf(&q.query, " AND LOWER(%s) LIKE LOWER(%s)", column, q.arg("%"+*value+"%"))
}

func (q *listQuery) where(condition string, value interface{}) {
	fmt.Fprintf(&q.query, " AND "+condition, q.arg(value))
}

func (q *listQuery) build(orderBy string, page Page) (string, []interface{}) {
	q.query.WriteString(" ORDER BY " + orderBy)
	fmt.Fprintf(&q.query, " LIMIT %s", q.arg(page.Limit))
	fmt.Fprintf(&q.query, " OFFSET %s", q.arg(page.Offset))
	return q.query.String(), q.args
}
