package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implementación de TaxRepository sobre PostgreSQL.
type TaxRepo struct {
	pool *pgxpool.Pool
}

// NewTaxRepository construye el adaptador de impuestos.
func NewTaxRepository(pool *pgxpool.Pool) *TaxRepo {
	return &TaxRepo{pool: pool}
}

const taxCols = `id, company_id, code, name, percentage, tax_type, status, created_at, updated_at`

func scanTax(row interface{ Scan(...any) error }) (*entity.Tax, error) {
	var t entity.Tax
	err := row.Scan(&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.Percentage,
		&t.Type, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un impuesto.
func (r *TaxRepo) Create(tax *entity.Tax) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO taxes (id, company_id, code, name, percentage, tax_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tax.ID, tax.CompanyID, tax.Code, tax.Name, tax.Percentage,
		tax.Type, tax.Status, tax.CreatedAt, tax.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tax: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene un impuesto por ID.
func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	query := `SELECT ` + taxCols + ` FROM taxes WHERE id = $1`
	t, err := scanTax(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return t, nil
}

// GetByCode obtiene un impuesto por (empresa, código).
func (r *TaxRepo) GetByCode(companyID, code string) (*entity.Tax, error) {
	query := `SELECT ` + taxCols + ` FROM taxes WHERE company_id = $1 AND code = $2`
	t, err := scanTax(r.pool.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax by code: %w", err)
	}
	return t, nil
}

// Update actualiza un impuesto (code inmutable).
func (r *TaxRepo) Update(tax *entity.Tax) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE taxes SET name = $2, percentage = $3, tax_type = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		tax.ID, tax.Name, tax.Percentage, tax.Type, tax.Status, tax.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tax: %w", err)
	}
	return nil
}

// ListByCompany impuestos de la empresa con paginación.
func (r *TaxRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, error) {
	query := `SELECT ` + taxCols + ` FROM taxes
		WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ExistAll informa si todos los ids existen y son de la empresa (todo-o-nada).
func (r *TaxRepo) ExistAll(companyID string, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int
	err := r.pool.QueryRow(context.Background(), `
		SELECT COUNT(DISTINCT id) FROM taxes
		WHERE company_id = $1 AND id = ANY($2)`,
		companyID, ids).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count taxes: %w", err)
	}
	return count == len(uniqueStrings(ids)), nil
}

// uniqueStrings deduplica preservando el conteo real a comparar con COUNT(DISTINCT).
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
