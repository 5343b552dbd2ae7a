package postgresql

import (
	"fmt"
	"strings"
)

// selectBuilder implements SelectBuilder
type selectBuilder struct {
	selectCols  []string
	fromTable   string
	whereCond   []string
	whereArgs   []any
	orderByCols []string
	limitVal    *int
	lockClause  string
	argCounter  int
}

// NewSelectBuilder creates a new select builder
func NewSelectBuilder() SelectBuilder {
	return &selectBuilder{}
}

func (qb *selectBuilder) Select(columns ...string) SelectBuilder {
	qb.selectCols = append(qb.selectCols, columns...)
	return qb
}

func (qb *selectBuilder) From(table string) SelectBuilder {
	qb.fromTable = table
	return qb
}

// Where appends an AND condition. `?` placeholders are rewritten to $n.
func (qb *selectBuilder) Where(condition string, args ...any) SelectBuilder {
	for range args {
		qb.argCounter++
		condition = strings.Replace(condition, "?", fmt.Sprintf("$%d", qb.argCounter), 1)
	}
	qb.whereCond = append(qb.whereCond, condition)
	qb.whereArgs = append(qb.whereArgs, args...)
	return qb
}

// WhereIn appends `column IN (...)`. An empty value list is ignored.
func (qb *selectBuilder) WhereIn(column string, values ...any) SelectBuilder {
	if len(values) == 0 {
		return qb
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "?"
	}
	return qb.Where(fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), values...)
}

func (qb *selectBuilder) OrderBy(column string, desc ...bool) SelectBuilder {
	order := "ASC"
	if len(desc) > 0 && desc[0] {
		order = "DESC"
	}
	qb.orderByCols = append(qb.orderByCols, fmt.Sprintf("%s %s", column, order))
	return qb
}

func (qb *selectBuilder) Limit(limit int) SelectBuilder {
	qb.limitVal = &limit
	return qb
}

func (qb *selectBuilder) ForUpdate(skipLocked bool) SelectBuilder {
	qb.lockClause = "FOR UPDATE"
	if skipLocked {
		qb.lockClause += " SKIP LOCKED"
	}
	return qb
}

func (qb *selectBuilder) Build() (string, []any) {
	var query strings.Builder

	query.WriteString("SELECT ")
	if len(qb.selectCols) == 0 {
		query.WriteString("*")
	} else {
		query.WriteString(strings.Join(qb.selectCols, ", "))
	}

	if qb.fromTable != "" {
		query.WriteString(" FROM ")
		query.WriteString(qb.fromTable)
	}

	if len(qb.whereCond) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(qb.whereCond, " AND "))
	}

	if len(qb.orderByCols) > 0 {
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(qb.orderByCols, ", "))
	}

	args := make([]any, 0, len(qb.whereArgs)+1)
	args = append(args, qb.whereArgs...)

	if qb.limitVal != nil {
		query.WriteString(fmt.Sprintf(" LIMIT $%d", qb.argCounter+1))
		args = append(args, *qb.limitVal)
	}

	if qb.lockClause != "" {
		query.WriteString(" ")
		query.WriteString(qb.lockClause)
	}

	return query.String(), args
}
