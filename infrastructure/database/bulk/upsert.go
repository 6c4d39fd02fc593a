package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

//go:generate mockgen -source=upsert.go -destination=mocks/upsert_mock.go -package=mocks

// Limite de parâmetros de um comando no protocolo do PostgreSQL
const maxBindParams = 65535

var ErrNoUniqueColumns = errors.New("upsert exige ao menos uma coluna única")

// Row é uma linha a gravar, indexada pelo nome da coluna
type Row map[string]any

// Statement é um comando pronto para execução
type Statement struct {
	SQL  string
	Args []any
	Rows int
}

// Upserter é o único caminho de escrita dos dados sincronizados
type Upserter interface {
	Execute(ctx context.Context, table string, rows []Row, uniqueColumns, updateColumns []string) (int64, error)
}

type txRunner interface {
	RunInTransaction(ctx context.Context, fn func(postgres.Queryer) error) error
}

type upserter struct {
	db       postgres.Queryer
	registry *Registry
}

func NewUpserter(db postgres.Queryer, registry *Registry) Upserter {
	return &upserter{
		db:       db,
		registry: registry,
	}
}

// Execute grava as linhas com INSERT ... ON CONFLICT. Sem linhas, retorna 0 sem tocar no banco.
func (u *upserter) Execute(ctx context.Context, table string, rows []Row, uniqueColumns, updateColumns []string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	t, err := u.registry.Lookup(table)
	if err != nil {
		return 0, err
	}

	statements, err := Plan(t, rows, uniqueColumns, updateColumns)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"table":      table,
			"sample_row": rows[0],
		}).WithError(err).Error("Erro ao montar upsert em lote")
		return 0, fmt.Errorf("erro ao montar upsert em %s: %w", table, err)
	}

	var total int64
	run := func(q postgres.Queryer) error {
		total = 0
		for _, st := range statements {
			n, err := u.exec(ctx, q, table, st)
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	}

	if runner, ok := u.db.(txRunner); ok && len(statements) > 1 {
		err = runner.RunInTransaction(ctx, run)
	} else {
		err = run(u.db)
	}
	if err != nil {
		metrics.UpsertErrors.WithLabelValues(table).Inc()
		log.ForContext(ctx).WithFields(log.Fields{
			"table":      table,
			"rows_count": len(rows),
			"sample_row": rows[0],
		}).WithError(err).Error("Erro ao gravar lote no banco de dados")

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, fmt.Errorf("erro no banco de dados ao gravar %s: %w (código: %s)", table, err, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao gravar %s: %w", table, err)
	}

	metrics.UpsertRows.WithLabelValues(table).Add(float64(total))

	return total, nil
}

func (u *upserter) exec(ctx context.Context, q postgres.Queryer, table string, st Statement) (int64, error) {
	start := time.Now()
	res, err := q.ExecContext(ctx, st.SQL, st.Args...)
	metrics.UpsertDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return int64(st.Rows), nil
	}
	return n, nil
}

// Plan converte as linhas, remove chaves duplicadas (a última vence) e divide
// em comandos que respeitam o limite de parâmetros.
func Plan(t *Table, rows []Row, uniqueColumns, updateColumns []string) ([]Statement, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if len(uniqueColumns) == 0 {
		return nil, ErrNoUniqueColumns
	}

	columns, err := columnsOf(t, rows)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c.Name] = true
	}
	for _, name := range uniqueColumns {
		if !present[name] {
			return nil, fmt.Errorf("coluna única %q ausente nas linhas de %s", name, t.Name)
		}
	}
	for _, name := range updateColumns {
		if !present[name] {
			return nil, fmt.Errorf("coluna de atualização %q ausente nas linhas de %s", name, t.Name)
		}
	}

	values, err := coerceRows(t, columns, rows, uniqueColumns)
	if err != nil {
		return nil, err
	}

	suffix := conflictClause(t, uniqueColumns, updateColumns)

	perStatement := maxBindParams / len(columns)
	statements := make([]Statement, 0, len(values)/perStatement+1)
	for start := 0; start < len(values); start += perStatement {
		end := min(start+perStatement, len(values))
		st, err := buildStatement(t, columns, values[start:end], suffix)
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}

	return statements, nil
}

// columnsOf usa o formato da primeira linha, na ordem da definição da tabela
func columnsOf(t *Table, rows []Row) ([]Column, error) {
	for _, row := range rows {
		for name := range row {
			if _, ok := t.Column(name); !ok {
				return nil, fmt.Errorf("coluna %q não existe em %s", name, t.Name)
			}
		}
	}

	columns := make([]Column, 0, len(rows[0]))
	for _, c := range t.Columns {
		if _, ok := rows[0][c.Name]; ok {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("nenhuma coluna informada para %s", t.Name)
	}
	return columns, nil
}

func coerceRows(t *Table, columns []Column, rows []Row, uniqueColumns []string) ([][]any, error) {
	uniqueIdx := make([]int, 0, len(uniqueColumns))
	for _, name := range uniqueColumns {
		for i, c := range columns {
			if c.Name == name {
				uniqueIdx = append(uniqueIdx, i)
			}
		}
	}

	out := make([][]any, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for r, row := range rows {
		vals := make([]any, len(columns))
		for i, c := range columns {
			v, err := c.Coerce(row[c.Name])
			if err != nil {
				return nil, fmt.Errorf("linha %d de %s, coluna %s: %w", r, t.Name, c.Name, err)
			}
			vals[i] = v
		}

		key := conflictKey(vals, uniqueIdx)
		if pos, dup := seen[key]; dup {
			out[pos] = vals
			continue
		}
		seen[key] = len(out)
		out = append(out, vals)
	}
	return out, nil
}

func conflictKey(vals []any, idx []int) string {
	parts := make([]string, len(idx))
	for i, j := range idx {
		parts[i] = fmt.Sprint(vals[j])
	}
	return strings.Join(parts, "\x1f")
}

func conflictClause(t *Table, uniqueColumns, updateColumns []string) string {
	target := fmt.Sprintf("ON CONFLICT (%s)", strings.Join(uniqueColumns, ", "))

	unique := make(map[string]bool, len(uniqueColumns))
	for _, c := range uniqueColumns {
		unique[c] = true
	}

	sets := make([]string, 0, len(updateColumns)+1)
	for _, c := range updateColumns {
		if unique[c] || c == "updated_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	if len(sets) == 0 {
		return target + " DO NOTHING"
	}
	if t.HasUpdatedAt {
		sets = append(sets, "updated_at = NOW()")
	}

	return target + " DO UPDATE SET " + strings.Join(sets, ", ")
}

func buildStatement(t *Table, columns []Column, values [][]any, suffix string) (Statement, error) {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	builder := squirrel.Insert(t.Name).Columns(names...).PlaceholderFormat(squirrel.Dollar)
	for _, vals := range values {
		exprs := make([]any, len(vals))
		for i, c := range columns {
			if cast := c.Cast(); cast != "" {
				exprs[i] = squirrel.Expr("?::"+cast, vals[i])
			} else {
				exprs[i] = vals[i]
			}
		}
		builder = builder.Values(exprs...)
	}

	query, args, err := builder.Suffix(suffix).ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return Statement{SQL: query, Args: args, Rows: len(values)}, nil
}
