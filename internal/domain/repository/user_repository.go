package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
// No existe Delete: los usuarios solo se desactivan.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
}

// UserCompanyRepository membresías usuario↔empresa.
type UserCompanyRepository interface {
	Assign(membership *entity.UserCompany) error
	Remove(userID, companyID string) error
	Get(userID, companyID string) (*entity.UserCompany, error)
	ListByUser(userID string) ([]*entity.UserCompany, error)
}

// UserAuditRepository bitácora de usuarios: solo inserción.
type UserAuditRepository interface {
	Append(audit *entity.UserAudit) error
	ListByUser(userID string, limit, offset int) ([]*entity.UserAudit, error)
}
