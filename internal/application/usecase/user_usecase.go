package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// UserUseCase administración de usuarios. Los usuarios nunca se borran: se
// desactivan, y todo cambio queda en la bitácora inmutable.
type UserUseCase struct {
	userRepo        repository.UserRepository
	userCompanyRepo repository.UserCompanyRepository
	auditRepo       repository.UserAuditRepository
	companyRepo     repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(
	userRepo repository.UserRepository,
	userCompanyRepo repository.UserCompanyRepository,
	auditRepo repository.UserAuditRepository,
	companyRepo repository.CompanyRepository,
) *UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		userCompanyRepo: userCompanyRepo,
		auditRepo:       auditRepo,
		companyRepo:     companyRepo,
	}
}

// Create alta de usuario. Username y email únicos a nivel global.
func (uc *UserUseCase) Create(actorID string, req dto.CreateUserRequest) (*entity.User, error) {
	if existing, err := uc.userRepo.GetByUsername(req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.userRepo.GetByEmail(req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		IsAdmin:      req.IsAdmin,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.appendAudit(user.ID, entity.AuditActionCreate, actorID, nil, map[string]any{
		"username": user.Username,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
	})
	return user, nil
}

// GetByID devuelve un usuario por id.
func (uc *UserUseCase) GetByID(id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// List usuarios registrados.
func (uc *UserUseCase) List(limit, offset int) ([]*entity.User, error) {
	return uc.userRepo.List(limit, offset)
}

// Update actualización parcial de usuario con bitácora del diff.
func (uc *UserUseCase) Update(actorID, id string, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}

	before := map[string]any{}
	after := map[string]any{}
	if req.Email != nil && *req.Email != user.Email {
		if existing, err := uc.userRepo.GetByEmail(*req.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrDuplicate
		}
		before["email"], after["email"] = user.Email, *req.Email
		user.Email = *req.Email
	}
	if req.FullName != nil && *req.FullName != user.FullName {
		before["full_name"], after["full_name"] = user.FullName, *req.FullName
		user.FullName = *req.FullName
	}
	if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
		before["is_admin"], after["is_admin"] = user.IsAdmin, *req.IsAdmin
		user.IsAdmin = *req.IsAdmin
	}
	if len(after) == 0 {
		return user, nil
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.appendAudit(user.ID, entity.AuditActionUpdate, actorID, before, after)
	return user, nil
}

// ChangePassword cambio autenticado: exige la contraseña vigente.
func (uc *UserUseCase) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := uc.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	uc.appendAudit(user.ID, entity.AuditActionPasswordChange, userID, nil, map[string]any{"via": "change_password"})
	return nil
}

// Deactivate desactiva al usuario. Idempotencia negada a propósito: desactivar
// dos veces es un error del caller.
func (uc *UserUseCase) Deactivate(actorID, id string) (*entity.User, error) {
	user, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.StatusInactive {
		return nil, domain.ErrUserAlreadyInactive
	}
	user.Status = entity.StatusInactive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.appendAudit(user.ID, entity.AuditActionDeactivate, actorID,
		map[string]any{"status": entity.StatusActive},
		map[string]any{"status": entity.StatusInactive})
	return user, nil
}

// Activate reactiva a un usuario desactivado.
func (uc *UserUseCase) Activate(actorID, id string) (*entity.User, error) {
	user, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.StatusActive {
		return nil, domain.ErrUserAlreadyActive
	}
	user.Status = entity.StatusActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.appendAudit(user.ID, entity.AuditActionActivate, actorID,
		map[string]any{"status": entity.StatusInactive},
		map[string]any{"status": entity.StatusActive})
	return user, nil
}

// AssignCompany asigna al usuario a una empresa.
func (uc *UserUseCase) AssignCompany(userID string, req dto.AssignCompanyRequest) error {
	if _, err := uc.GetByID(userID); err != nil {
		return err
	}
	company, err := uc.companyRepo.GetByID(req.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	existing, err := uc.userCompanyRepo.Get(userID, req.CompanyID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	return uc.userCompanyRepo.Assign(&entity.UserCompany{
		UserID:         userID,
		CompanyID:      req.CompanyID,
		IsCompanyAdmin: req.IsCompanyAdmin,
		CreatedAt:      time.Now(),
	})
}

// RemoveCompany quita la membresía del usuario en la empresa.
func (uc *UserUseCase) RemoveCompany(userID, companyID string) error {
	existing, err := uc.userCompanyRepo.Get(userID, companyID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.userCompanyRepo.Remove(userID, companyID)
}

// ListCompanies membresías del usuario.
func (uc *UserUseCase) ListCompanies(userID string) ([]*entity.UserCompany, error) {
	if _, err := uc.GetByID(userID); err != nil {
		return nil, err
	}
	return uc.userCompanyRepo.ListByUser(userID)
}

// ListAudit bitácora del usuario.
func (uc *UserUseCase) ListAudit(userID string, limit, offset int) ([]*entity.UserAudit, error) {
	if _, err := uc.GetByID(userID); err != nil {
		return nil, err
	}
	return uc.auditRepo.ListByUser(userID, limit, offset)
}

// appendAudit asienta en la bitácora; un fallo aquí no revierte la operación
// principal, solo se pierde la fila (los repos reales loguean el error).
func (uc *UserUseCase) appendAudit(userID, action, actorID string, before, after map[string]any) {
	var beforeJSON, afterJSON json.RawMessage
	if before != nil {
		beforeJSON, _ = json.Marshal(before)
	}
	if after != nil {
		afterJSON, _ = json.Marshal(after)
	}
	_ = uc.auditRepo.Append(&entity.UserAudit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		ActorID:   actorID,
		Before:    beforeJSON,
		After:     afterJSON,
		CreatedAt: time.Now(),
	})
}
