package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación de StorageRepository sobre PostgreSQL.
type StorageRepo struct {
	pool *pgxpool.Pool
}

// NewStorageRepository construye el adaptador de almacenes.
func NewStorageRepository(pool *pgxpool.Pool) *StorageRepo {
	return &StorageRepo{pool: pool}
}

const storageCols = `id, company_id, code, name, status, created_at, updated_at`

func scanStorage(row interface{ Scan(...any) error }) (*entity.InventoryStorage, error) {
	var s entity.InventoryStorage
	err := row.Scan(&s.ID, &s.CompanyID, &s.Code, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un almacén.
func (r *StorageRepo) Create(storage *entity.InventoryStorage) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO inventory_storages (id, company_id, code, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		storage.ID, storage.CompanyID, storage.Code, storage.Name,
		storage.Status, storage.CreatedAt, storage.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert storage: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene un almacén por ID.
func (r *StorageRepo) GetByID(id string) (*entity.InventoryStorage, error) {
	query := `SELECT ` + storageCols + ` FROM inventory_storages WHERE id = $1`
	s, err := scanStorage(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return s, nil
}

// GetByCode obtiene un almacén por (empresa, código).
func (r *StorageRepo) GetByCode(companyID, code string) (*entity.InventoryStorage, error) {
	query := `SELECT ` + storageCols + ` FROM inventory_storages WHERE company_id = $1 AND code = $2`
	s, err := scanStorage(r.pool.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage by code: %w", err)
	}
	return s, nil
}

// Update actualiza un almacén (code inmutable).
func (r *StorageRepo) Update(storage *entity.InventoryStorage) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE inventory_storages SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		storage.ID, storage.Name, storage.Status, storage.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}
	return nil
}

// ListByCompany almacenes de la empresa con paginación.
func (r *StorageRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryStorage, error) {
	query := `SELECT ` + storageCols + ` FROM inventory_storages
		WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storages: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryStorage
	for rows.Next() {
		s, err := scanStorage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan storage: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
