// Package postgres runs the table facade against the original relational
// backend. Queries go through database/sql on top of a pgx connection pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jassmeen122/techmentorai/core"
)

//region PostgresDriver

// PostgresDriver implements core.Driver for PostgreSQL.
type PostgresDriver struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

var _ core.Driver = (*PostgresDriver)(nil)

// NewPostgresDriver opens a pgx pool for connString and exposes it as a
// database/sql handle.
func NewPostgresDriver(ctx context.Context, connString string) (*PostgresDriver, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	return &PostgresDriver{pool: pool, db: stdlib.OpenDBFromPool(pool)}, nil
}

// NewPostgresDriverFromDB wraps an existing handle. Close closes db.
func NewPostgresDriverFromDB(db *sql.DB) *PostgresDriver {
	return &PostgresDriver{db: db}
}

func (driver *PostgresDriver) Connect(ctx context.Context) error {
	return driver.db.PingContext(ctx)
}

func (driver *PostgresDriver) Ping(ctx context.Context) error {
	return driver.db.PingContext(ctx)
}

func (driver *PostgresDriver) Close(ctx context.Context) error {
	err := driver.db.Close()
	if driver.pool != nil {
		driver.pool.Close()
	}
	return err
}

// Collection returns the table described by schema. No round trip is made.
func (driver *PostgresDriver) Collection(ctx context.Context, schema *core.SchemaCore) (core.Collection, error) {
	if schema.Collection == "" {
		return nil, fmt.Errorf("postgres: table name is empty")
	}
	primaryKey := schema.PrimaryKey
	if primaryKey == "" {
		primaryKey = core.DefaultPrimaryKey
	}
	return &postgresTable{
		db:         driver.db,
		table:      formatTable(schema),
		primaryKey: primaryKey,
	}, nil
}

//endregion

//region postgresTable

type postgresTable struct {
	db         *sql.DB
	table      string
	primaryKey string
}

func (t *postgresTable) Find(ctx context.Context, where *core.Where) ([]core.Document, error) {
	return t.find(ctx, where, false)
}

func (t *postgresTable) FindOne(ctx context.Context, where *core.Where) (core.Document, error) {
	rowList, err := t.find(ctx, where, true)
	if err != nil {
		return nil, err
	}
	if len(rowList) == 0 {
		return nil, nil
	}
	return rowList[0], nil
}

func (t *postgresTable) find(ctx context.Context, where *core.Where, single bool) ([]core.Document, error) {
	argList := []any{}
	sqlQuery := fmt.Sprintf("SELECT * FROM %s WHERE %s", t.table, buildCondition(safeCondition(where), &argList))
	sqlQuery += buildTail(where, single)

	rowList, err := t.db.QueryContext(ctx, sqlQuery, argList...)
	if err != nil {
		return nil, err
	}
	defer rowList.Close()

	columnList, err := rowList.Columns()
	if err != nil {
		return nil, err
	}

	resultList := []core.Document{}
	for rowList.Next() {
		valueList := make([]any, len(columnList))
		pointerList := make([]any, len(columnList))
		for i := range valueList {
			pointerList[i] = &valueList[i]
		}
		if err := rowList.Scan(pointerList...); err != nil {
			return nil, err
		}
		row := make(core.Document, len(columnList))
		for i, column := range columnList {
			if raw, ok := valueList[i].([]byte); ok {
				row[column] = string(raw)
				continue
			}
			row[column] = valueList[i]
		}
		resultList = append(resultList, row)
		if single {
			break
		}
	}
	if err := rowList.Err(); err != nil {
		return nil, err
	}
	return resultList, nil
}

func (t *postgresTable) InsertOne(ctx context.Context, doc core.Document) (any, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("postgres: insert into %s without columns", t.table)
	}
	columnNameList := sortedKeys(doc)
	quotedList := make([]string, len(columnNameList))
	placeholderList := make([]string, len(columnNameList))
	argList := make([]any, len(columnNameList))
	for i, column := range columnNameList {
		quotedList[i] = quoteIdent(column)
		placeholderList[i] = fmt.Sprintf("$%d", i+1)
		argList[i] = doc[column]
	}

	sqlQuery := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.table, strings.Join(quotedList, ", "), strings.Join(placeholderList, ", "), quoteIdent(t.primaryKey))

	var id any
	if err := t.db.QueryRowContext(ctx, sqlQuery, argList...).Scan(&id); err != nil {
		return nil, err
	}
	if raw, ok := id.([]byte); ok {
		return string(raw), nil
	}
	return id, nil
}

// UpdateOne merges changes into the first matching row. The row is picked by
// ctid so that ORDER BY applies the same way it does for reads.
func (t *postgresTable) UpdateOne(ctx context.Context, where *core.Where, changes core.Changes) error {
	if len(changes) == 0 {
		return nil
	}
	argList := []any{}
	setPartList := []string{}
	for _, column := range sortedKeys(changes) {
		argList = append(argList, changes[column])
		setPartList = append(setPartList, fmt.Sprintf("%s = $%d", quoteIdent(column), len(argList)))
	}

	sqlQuery := fmt.Sprintf("UPDATE %s SET %s WHERE ctid = (%s)",
		t.table, strings.Join(setPartList, ", "), t.firstMatch(where, &argList))

	_, err := t.db.ExecContext(ctx, sqlQuery, argList...)
	return err
}

func (t *postgresTable) DeleteOne(ctx context.Context, where *core.Where) error {
	argList := []any{}
	sqlQuery := fmt.Sprintf("DELETE FROM %s WHERE ctid = (%s)", t.table, t.firstMatch(where, &argList))
	_, err := t.db.ExecContext(ctx, sqlQuery, argList...)
	return err
}

func (t *postgresTable) CountDocuments(ctx context.Context, where *core.Where) (int64, error) {
	argList := []any{}
	whereClause := buildCondition(safeCondition(where), &argList)
	sqlQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", t.table, whereClause)
	if where != nil && where.Limit > 0 {
		sqlQuery = fmt.Sprintf("SELECT COUNT(*) FROM (SELECT 1 FROM %s WHERE %s LIMIT %d) AS limited",
			t.table, whereClause, where.Limit)
	}

	var count int64
	if err := t.db.QueryRowContext(ctx, sqlQuery, argList...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *postgresTable) firstMatch(where *core.Where, argList *[]any) string {
	subQuery := fmt.Sprintf("SELECT ctid FROM %s WHERE %s", t.table, buildCondition(safeCondition(where), argList))
	return subQuery + buildTail(where, true)
}

//endregion

//region Helpers

func formatTable(schema *core.SchemaCore) string {
	if schema.Database != "" {
		return pgx.Identifier{schema.Database, schema.Collection}.Sanitize()
	}
	return quoteIdent(schema.Collection)
}

// quoteIdent quotes name as a single SQL identifier. Embedded double quotes
// are doubled, so a column name can never close the identifier early.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// buildCondition renders condition as a SQL boolean expression, appending its
// values to argList and referencing them as $n placeholders.
//
// Example:
//
//	args := []any{}
//	buildCondition(core.Field("points").Gte(10), &args)
//	// `"points" >= $1`, args = [10]
func buildCondition(condition *core.Condition, argList *[]any) string {
	if condition == nil || condition.Operator == nil {
		return "1=1"
	}
	if len(condition.Children) > 0 {
		partList := []string{}
		for _, child := range condition.Children {
			partList = append(partList, buildCondition(child, argList))
		}
		if *condition.Operator == core.OpAnd {
			return "(" + strings.Join(partList, " AND ") + ")"
		}
		return "1=1"
	}

	column := quoteIdent(condition.FieldName)
	switch *condition.Operator {
	case core.OpEq:
		*argList = append(*argList, condition.Value)
		return fmt.Sprintf("%s = $%d", column, len(*argList))
	case core.OpGt:
		*argList = append(*argList, condition.Value)
		return fmt.Sprintf("%s > $%d", column, len(*argList))
	case core.OpGte:
		*argList = append(*argList, condition.Value)
		return fmt.Sprintf("%s >= $%d", column, len(*argList))
	case core.OpLt:
		*argList = append(*argList, condition.Value)
		return fmt.Sprintf("%s < $%d", column, len(*argList))
	case core.OpLte:
		*argList = append(*argList, condition.Value)
		return fmt.Sprintf("%s <= $%d", column, len(*argList))
	case core.OpIn:
		valueList, ok := condition.Value.([]any)
		if !ok {
			valueList = []any{condition.Value}
		}
		if len(valueList) == 0 {
			return "1=0"
		}
		placeholderList := []string{}
		for _, v := range valueList {
			*argList = append(*argList, v)
			placeholderList = append(placeholderList, fmt.Sprintf("$%d", len(*argList)))
		}
		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholderList, ", "))
	}
	return "1=1"
}

func buildTail(where *core.Where, single bool) string {
	tail := ""
	if where != nil && len(where.Sort) > 0 {
		orderPartList := []string{}
		for _, sortItem := range where.Sort {
			direction := "ASC"
			if sortItem.Order < 0 {
				direction = "DESC"
			}
			orderPartList = append(orderPartList, quoteIdent(sortItem.FieldName)+" "+direction)
		}
		tail += " ORDER BY " + strings.Join(orderPartList, ", ")
	}
	if single {
		tail += " LIMIT 1"
	} else if where != nil && where.Limit > 0 {
		tail += fmt.Sprintf(" LIMIT %d", where.Limit)
	}
	return tail
}

func safeCondition(where *core.Where) *core.Condition {
	if where == nil {
		return nil
	}
	return where.Condition
}

func sortedKeys[M ~map[string]any](m M) []string {
	keyList := make([]string, 0, len(m))
	for k := range m {
		keyList = append(keyList, k)
	}
	sort.Strings(keyList)
	return keyList
}

//endregion
