package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/permission"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// DefaultPassword é a senha provisória aplicada na criação e no reset.
const DefaultPassword = "rkive123"

const resetTokenTTL = 30 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

var validate = validator.New()

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService interface {
	Login(ctx context.Context, dto LoginDTO) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*User, *TokenPair, error)
	Me(ctx context.Context) (*User, error)
	CompleteProfile(ctx context.Context, dto CompleteProfileDTO) (*User, error)

	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ResetPassword(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*User, error)

	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, dto ConfirmResetDTO) error
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*User, *TokenPair, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar usuário para login")
		return nil, nil, err
	}
	if u == nil || !u.Active {
		log.Warnf("Login recusado: usuário não encontrado ou desativado (%s)", dto.Email)
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.Warnf("Login recusado: senha inválida (%s)", dto.Email)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.WithError(err).Error("Erro ao emitir tokens de sessão")
		return nil, nil, err
	}

	log.WithField("user_id", u.ID).Info("Login realizado com sucesso")
	return u, pair, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*User, *TokenPair, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Refresh token inválido")
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !u.Active {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *userService) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), string(u.Role), 15*time.Minute)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), string(u.Role), 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) Me(ctx context.Context) (*User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrForbidden
	}
	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// CompleteProfile cobre o assistente de primeiro acesso: unidade, setor e
// cargo precisam estar definidos para a trilha ser personalizada.
func (s *userService) CompleteProfile(ctx context.Context, dto CompleteProfileDTO) (*User, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}

	u.Unit = dto.Unit
	u.Sector = dto.Sector
	u.Position = dto.Position
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Erro ao completar perfil")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Perfil atualizado")
	return u, nil
}

func (s *userService) requireManager(ctx context.Context) (*User, error) {
	actor, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Can(permission.AdminUsersManage) {
		return nil, ErrForbidden
	}
	return actor, nil
}

func (s *userService) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	if err := validate.Struct(dto); err != nil {
		return nil, err
	}
	if !dto.Role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", dto.Role)
	}

	existing, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Unit:         dto.Unit,
		Sector:       dto.Sector,
		Position:     dto.Position,
		Active:       true,
	}

	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Erro ao criar usuário")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Usuário criado com senha provisória")
	return u, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*User, error) {
	log := config.WithContext(ctx)

	if _, err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil && !strings.EqualFold(*dto.Email, u.Email) {
		existing, err := s.repo.FindByEmail(*dto.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		if !dto.Role.IsValid() {
			return nil, fmt.Errorf("invalid role: %s", *dto.Role)
		}
		u.Role = *dto.Role
	}
	if dto.Unit != nil {
		u.Unit = *dto.Unit
	}
	if dto.Sector != nil {
		u.Sector = *dto.Sector
	}
	if dto.Position != nil {
		u.Position = *dto.Position
	}
	if dto.Active != nil {
		u.Active = *dto.Active
	}
	if dto.PermissionOverride != nil {
		u.PermissionOverride = datatypes.NewJSONType(*dto.PermissionOverride)
	}
	if dto.TeamScope != nil {
		u.TeamScope = datatypes.NewJSONType(*dto.TeamScope)
	}

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Erro ao atualizar usuário")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Usuário atualizado")
	return u, nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.requireManager(ctx); err != nil {
		return err
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	u.Active = false
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Erro ao desativar usuário")
		return err
	}

	log.WithField("user_id", u.ID).Info("Usuário desativado")
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.requireManager(ctx); err != nil {
		return err
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Erro ao resetar senha")
		return err
	}

	log.WithField("user_id", u.ID).Info("Senha redefinida para a provisória")
	return nil
}

func (s *userService) List(ctx context.Context) ([]*User, error) {
	if _, err := s.requireManager(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindAll()
}

// RequestPasswordReset emite um token cifrado de uso único. A entrega (e-mail)
// fica a cargo do chamador; o retorno aqui destrava o fluxo sem SMTP.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil || !u.Active {
		// não revela se o e-mail existe
		return "", nil
	}

	payload := fmt.Sprintf("%s|%d", u.ID, time.Now().Add(resetTokenTTL).Unix())
	token, err := config.Encrypt(payload)
	if err != nil {
		log.WithError(err).Error("Erro ao gerar token de reset")
		return "", err
	}

	log.WithField("user_id", u.ID).Info("Token de reset de senha emitido")
	return token, nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, dto ConfirmResetDTO) error {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return err
	}

	payload, err := config.Decrypt(dto.Token)
	if err != nil {
		return ErrInvalidResetToken
	}
	parts := strings.SplitN(payload, "|", 2)
	if len(parts) != 2 {
		return ErrInvalidResetToken
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return ErrInvalidResetToken
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		return ErrInvalidResetToken
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil || !u.Active {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Erro ao confirmar reset de senha")
		return err
	}

	log.WithField("user_id", u.ID).Info("Senha redefinida via token")
	return nil
}
