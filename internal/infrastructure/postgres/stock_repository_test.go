package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/infrastructure/postgres"
)

// recordingQuerier registra cada sentencia emitida, en orden, y devuelve
// filas vacías. Permite verificar el SQL de los adaptadores sin base de datos.
type recordingQuerier struct {
	ops  []string
	args [][]any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.ops = append(q.ops, "exec:"+sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.ops = append(q.ops, "query:"+sql)
	q.args = append(q.args, args)
	return emptyRows{}, nil
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.ops = append(q.ops, "row:"+sql)
	q.args = append(q.args, args)
	return zeroRow{}
}

type zeroRow struct{}

func (zeroRow) Scan(...any) error { return nil }

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func TestGetVariantForUpdate_AseguraLaFilaAntesDeBloquear(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewBalanceRepository(q)

	b, err := repo.GetVariantForUpdate("var-1", "sto-a")
	require.NoError(t, err)
	require.NotNil(t, b)

	// primero el insert en cero (serializa primeros movimientos concurrentes),
	// después el bloqueo de fila
	require.Len(t, q.ops, 2)
	assert.True(t, strings.HasPrefix(q.ops[0], "exec:"))
	assert.Contains(t, q.ops[0], "ON CONFLICT")
	assert.Contains(t, q.ops[0], "DO NOTHING")
	assert.True(t, strings.HasPrefix(q.ops[1], "row:"))
	assert.Contains(t, q.ops[1], "FOR UPDATE")
}

func TestGetLotForUpdate_AseguraLaFilaAntesDeBloquear(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewBalanceRepository(q)

	b, err := repo.GetLotForUpdate("var-1", "lot-1", "sto-a")
	require.NoError(t, err)
	require.NotNil(t, b)

	require.Len(t, q.ops, 2)
	assert.Contains(t, q.ops[0], "DO NOTHING")
	assert.Contains(t, q.ops[1], "FOR UPDATE")
}

func TestStockReport_ValorizaSoloConElTipoDePrecioGeneral(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewStockReportRepository(q)

	_, err := repo.StockByCompany("co-1")
	require.NoError(t, err)

	// el join al historial de precios fija el tipo: sin el predicado, una
	// variante con snapshots vigentes de varios tipos duplicaría filas
	require.Len(t, q.ops, 1)
	assert.Contains(t, q.ops[0], "p.price_type = $2")
	assert.Contains(t, q.ops[0], "p.is_current = true")
	require.Len(t, q.args[0], 2)
	assert.Equal(t, entity.PriceTypeGeneral, q.args[0][1])
}
