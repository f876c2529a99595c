package service

import (
	"context"
	"errors"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/rs/zerolog"
)

// MagicalGirlRepository defines the interface for magical girl storage
type MagicalGirlRepository interface {
	GetAll(ctx context.Context) ([]*model.MagicalGirl, error)
	GetByID(ctx context.Context, id string) (*model.MagicalGirl, error)
	FindByName(ctx context.Context, name, excludeID string) (*model.MagicalGirl, error)
	Create(ctx context.Context, in *model.MagicalGirlInput) (*model.MagicalGirl, error)
	Update(ctx context.Context, id string, in *model.MagicalGirlInput) (*model.MagicalGirl, error)
	Delete(ctx context.Context, id string) error
}

// MagicalGirlService handles magical girl business logic
type MagicalGirlService struct {
	repo MagicalGirlRepository
}

// MagicalGirlServiceConfig holds configuration for the magical girl service
type MagicalGirlServiceConfig struct {
	Repo MagicalGirlRepository
}

// NewMagicalGirlService creates a new magical girl service
func NewMagicalGirlService(cfg MagicalGirlServiceConfig) *MagicalGirlService {
	return &MagicalGirlService{
		repo: cfg.Repo,
	}
}

// List retrieves every magical girl
func (s *MagicalGirlService) List(ctx context.Context) ([]*model.MagicalGirl, error) {
	return s.repo.GetAll(ctx)
}

// Get retrieves a magical girl by id
func (s *MagicalGirlService) Get(ctx context.Context, id string) (*model.MagicalGirl, error) {
	girl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if girl == nil {
		return nil, ErrMagicalGirlNotFound
	}
	return girl, nil
}

// Create validates the input, checks the name is free and stores the record
func (s *MagicalGirlService) Create(ctx context.Context, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	if err := newValidationError(in.Validate()); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, *in.Name, ""); err != nil {
		return nil, err
	}

	girl, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrMagicalGirlNameExists
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("magical_girl_id", girl.ID).Msg("magical girl created")
	return girl, nil
}

// Update merges the supplied fields over the stored record, validates the
// result and writes it back. Keeping the current name is allowed.
func (s *MagicalGirlService) Update(ctx context.Context, id string, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := in.Merged(existing)
	if err := newValidationError(merged.Validate()); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, *merged.Name, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, &merged)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrMagicalGirlNameExists
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrMagicalGirlNotFound
	}
	return updated, nil
}

// Delete removes a magical girl. Deleting an unknown id succeeds.
func (s *MagicalGirlService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *MagicalGirlService) ensureNameAvailable(ctx context.Context, name, excludeID string) error {
	other, err := s.repo.FindByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if other != nil {
		return ErrMagicalGirlNameExists
	}
	return nil
}
