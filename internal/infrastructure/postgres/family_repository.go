package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.FamilyRepository = (*FamilyRepo)(nil)

// FamilyRepo implementación de FamilyRepository sobre PostgreSQL.
type FamilyRepo struct {
	pool *pgxpool.Pool
}

// NewFamilyRepository construye el adaptador de familias.
func NewFamilyRepository(pool *pgxpool.Pool) *FamilyRepo {
	return &FamilyRepo{pool: pool}
}

const familyCols = `id, company_id, code, name, COALESCE(default_tax_id, ''), is_stockable, is_lot_managed, status, created_at, updated_at`

func scanFamily(row interface{ Scan(...any) error }) (*entity.InventoryFamily, error) {
	var f entity.InventoryFamily
	err := row.Scan(&f.ID, &f.CompanyID, &f.Code, &f.Name, &f.DefaultTaxID,
		&f.IsStockable, &f.IsLotManaged, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create persiste una familia.
func (r *FamilyRepo) Create(family *entity.InventoryFamily) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO inventory_families (id, company_id, code, name, default_tax_id, is_stockable, is_lot_managed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`,
		family.ID, family.CompanyID, family.Code, family.Name, family.DefaultTaxID,
		family.IsStockable, family.IsLotManaged, family.Status,
		family.CreatedAt, family.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert family: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una familia por ID.
func (r *FamilyRepo) GetByID(id string) (*entity.InventoryFamily, error) {
	query := `SELECT ` + familyCols + ` FROM inventory_families WHERE id = $1`
	f, err := scanFamily(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get family: %w", err)
	}
	return f, nil
}

// GetByCode obtiene una familia por (empresa, código).
func (r *FamilyRepo) GetByCode(companyID, code string) (*entity.InventoryFamily, error) {
	query := `SELECT ` + familyCols + ` FROM inventory_families WHERE company_id = $1 AND code = $2`
	f, err := scanFamily(r.pool.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get family by code: %w", err)
	}
	return f, nil
}

// Update actualiza una familia (code inmutable).
func (r *FamilyRepo) Update(family *entity.InventoryFamily) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE inventory_families SET name = $2, default_tax_id = NULLIF($3, ''),
			is_stockable = $4, is_lot_managed = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		family.ID, family.Name, family.DefaultTaxID, family.IsStockable,
		family.IsLotManaged, family.Status, family.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update family: %w", err)
	}
	return nil
}

// ListByCompany familias de la empresa con paginación.
func (r *FamilyRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryFamily, error) {
	query := `SELECT ` + familyCols + ` FROM inventory_families
		WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryFamily
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
