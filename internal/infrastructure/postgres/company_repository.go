package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyCols = `id, COALESCE(group_id, ''), name, fiscal_id, country, address, phone, email, status, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.GroupID, &c.Name, &c.FiscalID, &c.Country,
		&c.Address, &c.Phone, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, group_id, name, fiscal_id, country, address, phone, email, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.GroupID, company.Name, company.FiscalID, company.Country,
		company.Address, company.Phone, company.Email, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyCols + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByFiscalID obtiene una empresa por identificación fiscal.
func (r *CompanyRepo) GetByFiscalID(fiscalID string) (*entity.Company, error) {
	query := `SELECT ` + companyCols + ` FROM companies WHERE fiscal_id = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, fiscalID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by fiscal id: %w", err)
	}
	return c, nil
}

// Update actualiza una empresa existente (fiscal_id inmutable).
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, country = $3, address = $4, phone = $5,
			email = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Country, company.Address,
		company.Phone, company.Email, company.Status, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyCols + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ReplaceCurrencies reemplazo idempotente por diferencia de conjuntos en una tx:
// borra las omitidas e inserta las faltantes.
func (r *CompanyRepo) ReplaceCurrencies(companyID string, currencyIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM companies_currencies WHERE company_id = $1 AND currency_id != ALL($2)`,
		companyID, currencyIDs)
	if err != nil {
		return fmt.Errorf("delete company currencies: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO companies_currencies (company_id, currency_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (company_id, currency_id) DO NOTHING`,
		companyID, currencyIDs)
	if err != nil {
		return fmt.Errorf("insert company currencies: %w", err)
	}
	return tx.Commit(ctx)
}

// ListCurrencyIDs monedas asociadas a la empresa.
func (r *CompanyRepo) ListCurrencyIDs(companyID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT currency_id FROM companies_currencies WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company currencies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan currency id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.CompanyGroupRepository = (*CompanyGroupRepo)(nil)

// CompanyGroupRepo implementación de CompanyGroupRepository sobre PostgreSQL.
type CompanyGroupRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyGroupRepository construye el adaptador de grupos.
func NewCompanyGroupRepository(pool *pgxpool.Pool) *CompanyGroupRepo {
	return &CompanyGroupRepo{pool: pool}
}

// Create persiste un grupo.
func (r *CompanyGroupRepo) Create(group *entity.CompanyGroup) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO company_groups (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		group.ID, group.Name, group.Status, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert company group: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *CompanyGroupRepo) GetByID(id string) (*entity.CompanyGroup, error) {
	var g entity.CompanyGroup
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, name, status, created_at, updated_at FROM company_groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company group: %w", err)
	}
	return &g, nil
}

// Update actualiza un grupo.
func (r *CompanyGroupRepo) Update(group *entity.CompanyGroup) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE company_groups SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		group.ID, group.Name, group.Status, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update company group: %w", err)
	}
	return nil
}

// List grupos con paginación.
func (r *CompanyGroupRepo) List(limit, offset int) ([]*entity.CompanyGroup, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, name, status, created_at, updated_at
		FROM company_groups ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list company groups: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyGroup
	for rows.Next() {
		var g entity.CompanyGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company group: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

var _ repository.SucursalRepository = (*SucursalRepo)(nil)

// SucursalRepo implementación de SucursalRepository sobre PostgreSQL.
type SucursalRepo struct {
	pool *pgxpool.Pool
}

// NewSucursalRepository construye el adaptador de sucursales.
func NewSucursalRepository(pool *pgxpool.Pool) *SucursalRepo {
	return &SucursalRepo{pool: pool}
}

const sucursalCols = `id, company_id, code, name, address, phone, status, created_at, updated_at`

func scanSucursal(row interface{ Scan(...any) error }) (*entity.Sucursal, error) {
	var s entity.Sucursal
	err := row.Scan(&s.ID, &s.CompanyID, &s.Code, &s.Name, &s.Address,
		&s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una sucursal.
func (r *SucursalRepo) Create(sucursal *entity.Sucursal) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO sucursales (id, company_id, code, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sucursal.ID, sucursal.CompanyID, sucursal.Code, sucursal.Name,
		sucursal.Address, sucursal.Phone, sucursal.Status,
		sucursal.CreatedAt, sucursal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sucursal: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *SucursalRepo) GetByID(id string) (*entity.Sucursal, error) {
	query := `SELECT ` + sucursalCols + ` FROM sucursales WHERE id = $1`
	s, err := scanSucursal(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal: %w", err)
	}
	return s, nil
}

// GetByCode obtiene una sucursal por (empresa, código).
func (r *SucursalRepo) GetByCode(companyID, code string) (*entity.Sucursal, error) {
	query := `SELECT ` + sucursalCols + ` FROM sucursales WHERE company_id = $1 AND code = $2`
	s, err := scanSucursal(r.pool.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal by code: %w", err)
	}
	return s, nil
}

// Update actualiza una sucursal (code inmutable).
func (r *SucursalRepo) Update(sucursal *entity.Sucursal) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE sucursales SET name = $2, address = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		sucursal.ID, sucursal.Name, sucursal.Address, sucursal.Phone,
		sucursal.Status, sucursal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sucursal: %w", err)
	}
	return nil
}

// ListByCompany sucursales de la empresa con paginación.
func (r *SucursalRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sucursal, error) {
	query := `SELECT ` + sucursalCols + ` FROM sucursales
		WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sucursal
	for rows.Next() {
		s, err := scanSucursal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ReplaceTaxes reemplazo idempotente de impuestos de la sucursal en una tx.
func (r *SucursalRepo) ReplaceTaxes(sucursalID string, taxIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM sucursales_taxes WHERE sucursal_id = $1 AND tax_id != ALL($2)`,
		sucursalID, taxIDs)
	if err != nil {
		return fmt.Errorf("delete sucursal taxes: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO sucursales_taxes (sucursal_id, tax_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (sucursal_id, tax_id) DO NOTHING`,
		sucursalID, taxIDs)
	if err != nil {
		return fmt.Errorf("insert sucursal taxes: %w", err)
	}
	return tx.Commit(ctx)
}

// ListTaxIDs impuestos asociados a la sucursal.
func (r *SucursalRepo) ListTaxIDs(sucursalID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT tax_id FROM sucursales_taxes WHERE sucursal_id = $1`, sucursalID)
	if err != nil {
		return nil, fmt.Errorf("list sucursal taxes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tax id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
