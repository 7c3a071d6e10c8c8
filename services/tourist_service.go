package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
)

// TouristService is the admin side of tourist account management
type TouristService struct {
	tourists TouristStore
}

func NewTouristService(tourists TouristStore) *TouristService {
	return &TouristService{tourists: tourists}
}

func newTourist(ctx context.Context, store TouristStore, req models.TouristSignupRequest) (*models.Tourist, error) {
	if !utils.AllPresent(req.FullName, req.Email, req.Password, req.Country) {
		return nil, Validation("all fields are required")
	}
	email := utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(email) {
		return nil, Validation("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, Validation("password must be at least %d characters", utils.MinPasswordLength)
	}

	if _, err := store.FindByEmail(ctx, email); err == nil {
		return nil, Validation("email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, Unexpected("failed to check email", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, Unexpected("failed to hash password", err)
	}

	now := time.Now()
	tourist := &models.Tourist{
		FullName:  utils.SanitizeInput(req.FullName),
		Email:     email,
		Password:  hashed,
		Country:   utils.SanitizeInput(req.Country),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Create(ctx, tourist); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Validation("email already registered")
		}
		return nil, Unexpected("failed to create tourist", err)
	}
	return tourist, nil
}

func (s *TouristService) List(ctx context.Context) ([]models.Tourist, error) {
	tourists, err := s.tourists.List(ctx)
	if err != nil {
		return nil, Unexpected("failed to list tourists", err)
	}
	for i := range tourists {
		tourists[i].Password = ""
	}
	return tourists, nil
}

func (s *TouristService) Create(ctx context.Context, req models.TouristSignupRequest) (*models.Tourist, error) {
	tourist, err := newTourist(ctx, s.tourists, req)
	if err != nil {
		return nil, err
	}
	tourist.Password = ""
	return tourist, nil
}

// Update merges the supplied fields. A password is rehashed only when it
// meets the minimum length.
func (s *TouristService) Update(ctx context.Context, id string, req models.TouristUpdateRequest) (*models.Tourist, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid tourist id")
	}
	tourist, err := s.tourists.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("tourist not found")
	}
	if err != nil {
		return nil, Unexpected("failed to load tourist", err)
	}

	if req.FullName != nil && strings.TrimSpace(*req.FullName) != "" {
		tourist.FullName = utils.SanitizeInput(*req.FullName)
	}
	if req.Country != nil && strings.TrimSpace(*req.Country) != "" {
		tourist.Country = utils.SanitizeInput(*req.Country)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := utils.NormalizeEmail(*req.Email)
		if !utils.IsValidEmail(email) {
			return nil, Validation("invalid email format")
		}
		if email != tourist.Email {
			existing, err := s.tourists.FindByEmail(ctx, email)
			if err == nil && existing.ID != tourist.ID {
				return nil, Validation("email already registered")
			}
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, Unexpected("failed to check email", err)
			}
			tourist.Email = email
		}
	}
	if req.Password != nil && utils.IsValidPassword(*req.Password) {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, Unexpected("failed to hash password", err)
		}
		tourist.Password = hashed
	}

	tourist.UpdatedAt = time.Now()
	if err := s.tourists.Update(ctx, tourist); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Validation("email already registered")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("tourist not found")
		}
		return nil, Unexpected("failed to update tourist", err)
	}
	tourist.Password = ""
	return tourist, nil
}

func (s *TouristService) Delete(ctx context.Context, id string) error {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return Validation("invalid tourist id")
	}
	if err := s.tourists.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("tourist not found")
		}
		return Unexpected("failed to delete tourist", err)
	}
	return nil
}
