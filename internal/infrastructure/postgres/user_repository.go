package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
// No hay Delete: los usuarios se desactivan por status.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userCols = `id, username, email, password_hash, full_name, is_admin, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.IsAdmin, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario.
func (r *UserRepo) Create(user *entity.User) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, full_name, is_admin, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FullName,
		user.IsAdmin, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE username = $1`
	u, err := scanUser(r.pool.QueryRow(context.Background(), query, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(context.Background(), query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario (username inmutable).
func (r *UserRepo) Update(user *entity.User) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE users SET email = $2, password_hash = $3, full_name = $4, is_admin = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		user.IsAdmin, user.Status, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", mapUnique(err))
	}
	return nil
}

// List usuarios con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM users ORDER BY username LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

var _ repository.UserCompanyRepository = (*UserCompanyRepo)(nil)

// UserCompanyRepo membresías usuario↔empresa.
type UserCompanyRepo struct {
	pool *pgxpool.Pool
}

// NewUserCompanyRepository construye el adaptador de membresías.
func NewUserCompanyRepository(pool *pgxpool.Pool) *UserCompanyRepo {
	return &UserCompanyRepo{pool: pool}
}

// Assign crea la membresía.
func (r *UserCompanyRepo) Assign(membership *entity.UserCompany) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO users_companies (user_id, company_id, is_company_admin, created_at)
		VALUES ($1, $2, $3, $4)`,
		membership.UserID, membership.CompanyID, membership.IsCompanyAdmin, membership.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert membership: %w", mapUnique(err))
	}
	return nil
}

// Remove elimina la membresía.
func (r *UserCompanyRepo) Remove(userID, companyID string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM users_companies WHERE user_id = $1 AND company_id = $2`, userID, companyID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// Get obtiene la membresía del par (usuario, empresa); nil si no existe.
func (r *UserCompanyRepo) Get(userID, companyID string) (*entity.UserCompany, error) {
	var m entity.UserCompany
	err := r.pool.QueryRow(context.Background(), `
		SELECT user_id, company_id, is_company_admin, created_at
		FROM users_companies WHERE user_id = $1 AND company_id = $2`, userID, companyID).
		Scan(&m.UserID, &m.CompanyID, &m.IsCompanyAdmin, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListByUser empresas del usuario.
func (r *UserCompanyRepo) ListByUser(userID string) ([]*entity.UserCompany, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT user_id, company_id, is_company_admin, created_at
		FROM users_companies WHERE user_id = $1 ORDER BY company_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserCompany
	for rows.Next() {
		var m entity.UserCompany
		if err := rows.Scan(&m.UserID, &m.CompanyID, &m.IsCompanyAdmin, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

var _ repository.UserAuditRepository = (*UserAuditRepo)(nil)

// UserAuditRepo bitácora de usuarios: solo inserción.
type UserAuditRepo struct {
	pool *pgxpool.Pool
}

// NewUserAuditRepository construye el adaptador de la bitácora.
func NewUserAuditRepository(pool *pgxpool.Pool) *UserAuditRepo {
	return &UserAuditRepo{pool: pool}
}

// Append asienta un registro de auditoría. La tabla no admite update ni delete.
func (r *UserAuditRepo) Append(audit *entity.UserAudit) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO user_audit (id, user_id, action, actor_id, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		audit.ID, audit.UserID, audit.Action, audit.ActorID,
		audit.Before, audit.After, audit.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// ListByUser registros de auditoría del usuario, más recientes primero.
func (r *UserAuditRepo) ListByUser(userID string, limit, offset int) ([]*entity.UserAudit, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, user_id, action, actor_id, before, after, created_at
		FROM user_audit WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserAudit
	for rows.Next() {
		var a entity.UserAudit
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.ActorID, &a.Before, &a.After, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
