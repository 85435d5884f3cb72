package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
	"github.com/dvillegas/multierp-api/pkg/config"
	"github.com/dvillegas/multierp-api/pkg/jwt"
)

// resetTokenTTL vida del token de reset de contraseña.
const resetTokenTTL = 30 * time.Minute

// UseCase autenticación: login con username o email, refresh tokens rotados
// de un solo uso y reset de contraseña por correo.
type UseCase struct {
	userRepo        repository.UserRepository
	userCompanyRepo repository.UserCompanyRepository
	auditRepo       repository.UserAuditRepository
	tokens          TokenStore
	mailer          Mailer
	jwtCfg          config.JWTConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(
	userRepo repository.UserRepository,
	userCompanyRepo repository.UserCompanyRepository,
	auditRepo repository.UserAuditRepository,
	tokens TokenStore,
	mailer Mailer,
	jwtCfg config.JWTConfig,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		userCompanyRepo: userCompanyRepo,
		auditRepo:       auditRepo,
		tokens:          tokens,
		mailer:          mailer,
		jwtCfg:          jwtCfg,
	}
}

// Login valida credenciales y emite el par access/refresh.
// Las credenciales inválidas nunca distinguen usuario inexistente de
// contraseña incorrecta ni de usuario inactivo.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.findUser(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.StatusActive {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	identity := jwt.Identity{UserID: user.ID, IsAdmin: user.IsAdmin}
	if req.CompanyID != "" {
		membership, err := uc.userCompanyRepo.Get(user.ID, req.CompanyID)
		if err != nil {
			return nil, err
		}
		if membership == nil && !user.IsAdmin {
			return nil, domain.ErrForbidden
		}
		identity.CompanyID = req.CompanyID
		if membership != nil {
			identity.IsCompanyAdmin = membership.IsCompanyAdmin
		}
	} else {
		// usuario de una sola empresa: la fijamos como empresa activa
		memberships, err := uc.userCompanyRepo.ListByUser(user.ID)
		if err != nil {
			return nil, err
		}
		if len(memberships) == 1 {
			identity.CompanyID = memberships[0].CompanyID
			identity.IsCompanyAdmin = memberships[0].IsCompanyAdmin
		}
	}

	access, refresh, err := uc.issueTokens(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	}, nil
}

// Refresh consume el refresh token (un solo uso), lo rota y emite un access
// token nuevo con el mismo contexto de empresa.
func (uc *UseCase) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.RefreshResponse, error) {
	session, err := uc.tokens.ConsumeRefresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.StatusActive {
		return nil, domain.ErrUnauthorized
	}

	access, refresh, err := uc.issueTokens(ctx, jwt.Identity{
		UserID:         user.ID,
		CompanyID:      session.CompanyID,
		IsAdmin:        user.IsAdmin,
		IsCompanyAdmin: session.IsCompanyAdmin,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout invalida el refresh token. Idempotente: un token ya consumido no es error.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	_, err := uc.tokens.ConsumeRefresh(ctx, refreshToken)
	return err
}

// RequestPasswordReset genera un token de un solo uso y lo envía por correo.
// Nunca revela si el email existe.
func (uc *UseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil || user.Status != entity.StatusActive {
		return nil
	}

	token := uuid.New().String()
	if err := uc.tokens.SaveReset(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}
	body := fmt.Sprintf("Use el siguiente token para restablecer su contraseña: %s\nEl token expira en %d minutos.",
		token, int(resetTokenTTL.Minutes()))
	return uc.mailer.Send(ctx, user.Email, "Restablecimiento de contraseña", body)
}

// ConfirmPasswordReset consume el token de reset y fija la contraseña nueva.
func (uc *UseCase) ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirm) error {
	userID, err := uc.tokens.ConsumeReset(ctx, req.Token)
	if err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.Status != entity.StatusActive {
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

	detail, _ := json.Marshal(map[string]string{"via": "password_reset"})
	return uc.auditRepo.Append(&entity.UserAudit{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Action:    entity.AuditActionPasswordChange,
		ActorID:   user.ID,
		After:     detail,
		CreatedAt: time.Now(),
	})
}

// findUser busca por username y, si no hay coincidencia, por email.
func (uc *UseCase) findUser(login string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(login)
	if err != nil {
		return nil, err
	}
	if user == nil && strings.Contains(login, "@") {
		user, err = uc.userRepo.GetByEmail(login)
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (uc *UseCase) issueTokens(ctx context.Context, identity jwt.Identity) (access, refresh string, err error) {
	access, err = jwt.Generate(uc.jwtCfg.Secret, identity, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", "", err
	}
	refresh = uuid.New().String()
	ttl := time.Duration(uc.jwtCfg.RefreshExpMinutes) * time.Minute
	err = uc.tokens.SaveRefresh(ctx, refresh, RefreshSession{
		UserID:         identity.UserID,
		CompanyID:      identity.CompanyID,
		IsCompanyAdmin: identity.IsCompanyAdmin,
	}, ttl)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
