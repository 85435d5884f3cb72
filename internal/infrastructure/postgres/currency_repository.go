package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación de CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository construye el adaptador de monedas.
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepo {
	return &CurrencyRepo{pool: pool}
}

const currencyCols = `id, iso_code, name, symbol, status, created_at, updated_at`

func scanCurrency(row interface{ Scan(...any) error }) (*entity.Currency, error) {
	var c entity.Currency
	err := row.Scan(&c.ID, &c.ISOCode, &c.Name, &c.Symbol, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una moneda.
func (r *CurrencyRepo) Create(currency *entity.Currency) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO currencies (id, iso_code, name, symbol, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		currency.ID, currency.ISOCode, currency.Name, currency.Symbol,
		currency.Status, currency.CreatedAt, currency.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert currency: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una moneda por ID.
func (r *CurrencyRepo) GetByID(id string) (*entity.Currency, error) {
	query := `SELECT ` + currencyCols + ` FROM currencies WHERE id = $1`
	c, err := scanCurrency(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return c, nil
}

// GetByISOCode obtiene una moneda por código ISO.
func (r *CurrencyRepo) GetByISOCode(code string) (*entity.Currency, error) {
	query := `SELECT ` + currencyCols + ` FROM currencies WHERE iso_code = $1`
	c, err := scanCurrency(r.pool.QueryRow(context.Background(), query, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency by iso code: %w", err)
	}
	return c, nil
}

// Update actualiza una moneda.
func (r *CurrencyRepo) Update(currency *entity.Currency) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE currencies SET name = $2, symbol = $3, status = $4, updated_at = $5 WHERE id = $1`,
		currency.ID, currency.Name, currency.Symbol, currency.Status, currency.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	return nil
}

// List monedas con paginación.
func (r *CurrencyRepo) List(limit, offset int) ([]*entity.Currency, error) {
	query := `SELECT ` + currencyCols + ` FROM currencies ORDER BY iso_code LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

var _ repository.ExchangeRepository = (*ExchangeRepo)(nil)

// ExchangeRepo implementación de ExchangeRepository (usable con pool o tx).
type ExchangeRepo struct {
	q Querier
}

// NewExchangeRepository construye el adaptador de tasas. Pasar pool o tx.
func NewExchangeRepository(q Querier) *ExchangeRepo {
	return &ExchangeRepo{q: q}
}

const exchangeCols = `id, company_id, currency_id, exc_type, rate, method, status, created_at, updated_at`

func scanExchange(row interface{ Scan(...any) error }) (*entity.CurrencyExchange, error) {
	var e entity.CurrencyExchange
	err := row.Scan(&e.ID, &e.CompanyID, &e.CurrencyID, &e.Type, &e.Rate,
		&e.Method, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una configuración cambiaria. El índice único parcial sobre
// (company_id, currency_id, exc_type) WHERE status = 1 respalda el invariante.
func (r *ExchangeRepo) Create(exc *entity.CurrencyExchange) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO currency_exchanges (id, company_id, currency_id, exc_type, rate, method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		exc.ID, exc.CompanyID, exc.CurrencyID, exc.Type, exc.Rate,
		exc.Method, exc.Status, exc.CreatedAt, exc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una configuración por ID.
func (r *ExchangeRepo) GetByID(id string) (*entity.CurrencyExchange, error) {
	query := `SELECT ` + exchangeCols + ` FROM currency_exchanges WHERE id = $1`
	e, err := scanExchange(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	return e, nil
}

// GetActive fila activa del triple (empresa, moneda, tipo), o nil.
func (r *ExchangeRepo) GetActive(companyID, currencyID string, excType int16) (*entity.CurrencyExchange, error) {
	query := `SELECT ` + exchangeCols + ` FROM currency_exchanges
		WHERE company_id = $1 AND currency_id = $2 AND exc_type = $3 AND status = 1`
	e, err := scanExchange(r.q.QueryRow(context.Background(), query, companyID, currencyID, excType))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active exchange: %w", err)
	}
	return e, nil
}

// GetActiveByType fila activa de un tipo para la empresa, sin fijar moneda.
func (r *ExchangeRepo) GetActiveByType(companyID string, excType int16) (*entity.CurrencyExchange, error) {
	query := `SELECT ` + exchangeCols + ` FROM currency_exchanges
		WHERE company_id = $1 AND exc_type = $2 AND status = 1`
	e, err := scanExchange(r.q.QueryRow(context.Background(), query, companyID, excType))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active exchange by type: %w", err)
	}
	return e, nil
}

// Update actualiza tasa, método y estado.
func (r *ExchangeRepo) Update(exc *entity.CurrencyExchange) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE currency_exchanges SET rate = $2, method = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		exc.ID, exc.Rate, exc.Method, exc.Status, exc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update exchange: %w", err)
	}
	return nil
}

// ListByCompany configuraciones de la empresa con paginación.
func (r *ExchangeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CurrencyExchange, error) {
	query := `SELECT ` + exchangeCols + ` FROM currency_exchanges
		WHERE company_id = $1 ORDER BY exc_type, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	var list []*entity.CurrencyExchange
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

var _ repository.ExchangeHistoryRepository = (*ExchangeHistoryRepo)(nil)

// ExchangeHistoryRepo historial de tasas: solo inserción (usable con pool o tx).
type ExchangeHistoryRepo struct {
	q Querier
}

// NewExchangeHistoryRepository construye el adaptador del historial.
func NewExchangeHistoryRepository(q Querier) *ExchangeHistoryRepo {
	return &ExchangeHistoryRepo{q: q}
}

// Append asienta la tasa anterior. Nunca hay update ni delete sobre esta tabla.
func (r *ExchangeHistoryRepo) Append(h *entity.CurrencyExchangeHistory) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO currency_exchange_history (id, exchange_id, old_rate, old_method, user_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.ExchangeID, h.OldRate, h.OldMethod, h.UserID, h.RecordedAt)
	if err != nil {
		return fmt.Errorf("append exchange history: %w", err)
	}
	return nil
}

// ListByExchange filas del historial, más recientes primero.
func (r *ExchangeHistoryRepo) ListByExchange(exchangeID string, limit, offset int) ([]*entity.CurrencyExchangeHistory, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, exchange_id, old_rate, old_method, user_id, recorded_at
		FROM currency_exchange_history
		WHERE exchange_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`,
		exchangeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list exchange history: %w", err)
	}
	defer rows.Close()

	var list []*entity.CurrencyExchangeHistory
	for rows.Next() {
		var h entity.CurrencyExchangeHistory
		if err := rows.Scan(&h.ID, &h.ExchangeID, &h.OldRate, &h.OldMethod, &h.UserID, &h.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan exchange history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
