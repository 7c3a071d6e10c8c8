package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
)

// TokenIssuer is implemented by utils.TokenManager
type TokenIssuer interface {
	Issue(userID string, role models.Role) (string, error)
}

// AuthService handles signup, login and identity lookup for every role
type AuthService struct {
	tourists  TouristStore
	providers *ProviderService
	admins    AdminStore
	tokens    TokenIssuer
}

func NewAuthService(tourists TouristStore, providers *ProviderService, admins AdminStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		tourists:  tourists,
		providers: providers,
		admins:    admins,
		tokens:    tokens,
	}
}

// SignupTourist registers a tourist and logs them in
func (s *AuthService) SignupTourist(ctx context.Context, req models.TouristSignupRequest) (*models.AuthResponse, error) {
	tourist, err := newTourist(ctx, s.tourists, req)
	if err != nil {
		return nil, err
	}
	return s.respond(tourist.ID.Hex(), models.RoleTourist, "Tourist registered successfully")
}

// SignupProvider registers a provider pending admin approval
func (s *AuthService) SignupProvider(ctx context.Context, form models.ProviderForm, files ProviderFiles) (*models.AuthResponse, error) {
	provider, err := s.providers.Register(ctx, form, files)
	if err != nil {
		return nil, err
	}
	return s.respond(provider.ID.Hex(), models.RoleProvider, "Provider registered successfully, awaiting admin approval")
}

// Login checks credentials for the requested role and issues a token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, Validation("role must be tourist, provider or admin")
	}
	if req.Password == "" {
		return nil, Validation("password is required")
	}

	var id, hash string
	switch role {
	case models.RoleTourist:
		tourist, err := s.tourists.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
		if err != nil {
			return nil, lookupError(err)
		}
		id, hash = tourist.ID.Hex(), tourist.Password
	case models.RoleProvider:
		provider, err := s.providers.providers.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
		if err != nil {
			return nil, lookupError(err)
		}
		if !utils.CheckPassword(provider.Password, req.Password) {
			return nil, Validation("invalid credentials")
		}
		if !provider.Approved {
			return nil, Forbidden("provider account is awaiting admin approval")
		}
		return s.respond(provider.ID.Hex(), role, "Login successful")
	case models.RoleAdmin:
		admin, err := s.admins.FindByUsername(ctx, strings.TrimSpace(req.Username))
		if err != nil {
			return nil, lookupError(err)
		}
		id, hash = admin.ID.Hex(), admin.Password
	}

	if !utils.CheckPassword(hash, req.Password) {
		return nil, Validation("invalid credentials")
	}
	return s.respond(id, role, "Login successful")
}

func lookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return Validation("user not found")
	}
	return Unexpected("failed to look up user", err)
}

func (s *AuthService) respond(id string, role models.Role, message string) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(id, role)
	if err != nil {
		return nil, Unexpected("failed to generate token", err)
	}
	return &models.AuthResponse{Token: token, Role: role, Message: message}, nil
}

// Me returns the account behind an authenticated identity
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (interface{}, error) {
	oid, ok := utils.ParseObjectID(identity.UserID)
	if !ok {
		return nil, Unauthenticated("invalid token")
	}

	var (
		account interface{}
		err     error
	)
	switch identity.Role {
	case models.RoleTourist:
		var t *models.Tourist
		if t, err = s.tourists.FindByID(ctx, oid); err == nil {
			t.Password = ""
			account = t
		}
	case models.RoleProvider:
		var p *models.Provider
		if p, err = s.providers.providers.FindByID(ctx, oid); err == nil {
			p.Password = ""
			account = p
		}
	case models.RoleAdmin:
		var a *models.Admin
		if a, err = s.admins.FindByID(ctx, oid); err == nil {
			a.Password = ""
			account = a
		}
	default:
		return nil, Unauthenticated("invalid token")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("account not found")
	}
	if err != nil {
		return nil, Unexpected("failed to load account", err)
	}
	return account, nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if !utils.IsValidPassword(password) {
		return errors.New("admin password is too short")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.Admin{Username: username, Password: hashed, CreatedAt: time.Now()}
	if err := s.admins.Create(ctx, admin); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return err
	}
	log.Printf("Seeded admin account %q", username)
	return nil
}
