package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.AttrRepository = (*AttrRepo)(nil)

// AttrRepo implementación de AttrRepository sobre PostgreSQL.
type AttrRepo struct {
	pool *pgxpool.Pool
}

// NewAttrRepository construye el adaptador de atributos.
func NewAttrRepository(pool *pgxpool.Pool) *AttrRepo {
	return &AttrRepo{pool: pool}
}

// CreateAttr persiste un atributo.
func (r *AttrRepo) CreateAttr(attr *entity.InventoryAttr) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO inventory_attrs (id, company_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		attr.ID, attr.CompanyID, attr.Name, attr.Status, attr.CreatedAt, attr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert attr: %w", mapUnique(err))
	}
	return nil
}

// GetAttrByID obtiene un atributo por ID.
func (r *AttrRepo) GetAttrByID(id string) (*entity.InventoryAttr, error) {
	var a entity.InventoryAttr
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, company_id, name, status, created_at, updated_at
		FROM inventory_attrs WHERE id = $1`, id).
		Scan(&a.ID, &a.CompanyID, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attr: %w", err)
	}
	return &a, nil
}

// GetAttrByName obtiene un atributo por (empresa, nombre).
func (r *AttrRepo) GetAttrByName(companyID, name string) (*entity.InventoryAttr, error) {
	var a entity.InventoryAttr
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, company_id, name, status, created_at, updated_at
		FROM inventory_attrs WHERE company_id = $1 AND name = $2`, companyID, name).
		Scan(&a.ID, &a.CompanyID, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attr by name: %w", err)
	}
	return &a, nil
}

// ListAttrsByCompany atributos de la empresa con paginación.
func (r *AttrRepo) ListAttrsByCompany(companyID string, limit, offset int) ([]*entity.InventoryAttr, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, company_id, name, status, created_at, updated_at
		FROM inventory_attrs WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list attrs: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryAttr
	for rows.Next() {
		var a entity.InventoryAttr
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attr: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CreateValue persiste un valor de atributo.
func (r *AttrRepo) CreateValue(value *entity.InventoryAttrValue) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO inventory_attr_values (id, attr_id, value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		value.ID, value.AttrID, value.Value, value.Status, value.CreatedAt, value.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert attr value: %w", mapUnique(err))
	}
	return nil
}

// GetValueByID obtiene un valor por ID.
func (r *AttrRepo) GetValueByID(id string) (*entity.InventoryAttrValue, error) {
	var v entity.InventoryAttrValue
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, attr_id, value, status, created_at, updated_at
		FROM inventory_attr_values WHERE id = $1`, id).
		Scan(&v.ID, &v.AttrID, &v.Value, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attr value: %w", err)
	}
	return &v, nil
}

// GetValue obtiene un valor por (atributo, valor).
func (r *AttrRepo) GetValue(attrID, value string) (*entity.InventoryAttrValue, error) {
	var v entity.InventoryAttrValue
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, attr_id, value, status, created_at, updated_at
		FROM inventory_attr_values WHERE attr_id = $1 AND value = $2`, attrID, value).
		Scan(&v.ID, &v.AttrID, &v.Value, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attr value by pair: %w", err)
	}
	return &v, nil
}

// ListValuesByAttr valores permitidos de un atributo.
func (r *AttrRepo) ListValuesByAttr(attrID string) ([]*entity.InventoryAttrValue, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, attr_id, value, status, created_at, updated_at
		FROM inventory_attr_values WHERE attr_id = $1 ORDER BY value`, attrID)
	if err != nil {
		return nil, fmt.Errorf("list attr values: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryAttrValue
	for rows.Next() {
		var v entity.InventoryAttrValue
		if err := rows.Scan(&v.ID, &v.AttrID, &v.Value, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attr value: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ExistAllValues valida todo-o-nada que los valores existan y sean de la empresa
// (la empresa se resuelve vía el atributo dueño del valor).
func (r *AttrRepo) ExistAllValues(companyID string, valueIDs []string) (bool, error) {
	if len(valueIDs) == 0 {
		return true, nil
	}
	var count int
	err := r.pool.QueryRow(context.Background(), `
		SELECT COUNT(DISTINCT v.id)
		FROM inventory_attr_values v
		JOIN inventory_attrs a ON a.id = v.attr_id
		WHERE a.company_id = $1 AND v.id = ANY($2)`,
		companyID, valueIDs).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count attr values: %w", err)
	}
	return count == len(uniqueStrings(valueIDs)), nil
}
