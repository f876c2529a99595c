package service

import (
	"context"
	"errors"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/rs/zerolog"
)

// WitchRepository defines the interface for witch storage
type WitchRepository interface {
	GetAll(ctx context.Context) ([]*model.Witch, error)
	GetByID(ctx context.Context, id string) (*model.Witch, error)
	FindByName(ctx context.Context, name, excludeID string) (*model.Witch, error)
	Create(ctx context.Context, in *model.WitchInput) (*model.Witch, error)
	Update(ctx context.Context, id string, in *model.WitchInput) (*model.Witch, error)
	Delete(ctx context.Context, id string) error
}

// MagicalGirlLookup resolves witch relations
type MagicalGirlLookup interface {
	GetByID(ctx context.Context, id string) (*model.MagicalGirl, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.MagicalGirl, error)
}

// WitchService handles witch business logic
type WitchService struct {
	repo         WitchRepository
	magicalGirls MagicalGirlLookup
}

// WitchServiceConfig holds configuration for the witch service
type WitchServiceConfig struct {
	Repo         WitchRepository
	MagicalGirls MagicalGirlLookup
}

// NewWitchService creates a new witch service
func NewWitchService(cfg WitchServiceConfig) *WitchService {
	return &WitchService{
		repo:         cfg.Repo,
		magicalGirls: cfg.MagicalGirls,
	}
}

// List retrieves every witch with her magical girl embedded
func (s *WitchService) List(ctx context.Context) ([]*model.Witch, error) {
	witches, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, witches...); err != nil {
		return nil, err
	}
	return witches, nil
}

// Get retrieves a witch by id with her magical girl embedded
func (s *WitchService) Get(ctx context.Context, id string) (*model.Witch, error) {
	witch, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, witch); err != nil {
		return nil, err
	}
	return witch, nil
}

// Create validates the input, checks the name is free and stores the record
func (s *WitchService) Create(ctx context.Context, in *model.WitchInput) (*model.Witch, error) {
	if err := s.validate(ctx, in, true); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, *in.Name, ""); err != nil {
		return nil, err
	}

	witch, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrWitchNameExists
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("witch_id", witch.ID).Msg("witch created")
	if err := s.populate(ctx, witch); err != nil {
		return nil, err
	}
	return witch, nil
}

// Update merges the supplied fields over the stored record, validates the
// result and writes it back. An empty magicalGirl removes the link. A stored
// link is only checked when the caller sends magicalGirl again.
func (s *WitchService) Update(ctx context.Context, id string, in *model.WitchInput) (*model.Witch, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := in.Merged(existing)
	if err := s.validate(ctx, &merged, in.MagicalGirl != nil); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, *merged.Name, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, &merged)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrWitchNameExists
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrWitchNotFound
	}
	return updated, nil
}

// Delete removes a witch. Deleting an unknown id succeeds.
func (s *WitchService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *WitchService) find(ctx context.Context, id string) (*model.Witch, error) {
	witch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if witch == nil {
		return nil, ErrWitchNotFound
	}
	return witch, nil
}

// validate runs the field rules and, when checkLink is set, checks the link
// target exists
func (s *WitchService) validate(ctx context.Context, in *model.WitchInput, checkLink bool) error {
	errs := in.Validate()

	if checkLink && in.HasMagicalGirl() {
		girl, err := s.magicalGirls.GetByID(ctx, *in.MagicalGirl)
		if err != nil {
			return err
		}
		if girl == nil {
			errs = append(errs, model.FieldError{Field: "magicalGirl", Message: model.MsgMagicalGirlNotFound})
		}
	}

	return newValidationError(errs)
}

func (s *WitchService) ensureNameAvailable(ctx context.Context, name, excludeID string) error {
	other, err := s.repo.FindByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if other != nil {
		return ErrWitchNameExists
	}
	return nil
}

// populate embeds the linked magical girls with one batch lookup.
// Links to deleted records are left empty.
func (s *WitchService) populate(ctx context.Context, witches ...*model.Witch) error {
	seen := make(map[string]bool)
	var ids []string
	for _, w := range witches {
		if w.MagicalGirlID != "" && !seen[w.MagicalGirlID] {
			seen[w.MagicalGirlID] = true
			ids = append(ids, w.MagicalGirlID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	girls, err := s.magicalGirls.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*model.MagicalGirl, len(girls))
	for _, g := range girls {
		byID[g.ID] = g
	}

	for _, w := range witches {
		if g, ok := byID[w.MagicalGirlID]; ok {
			w.MagicalGirl = g
		} else if w.MagicalGirlID != "" {
			zerolog.Ctx(ctx).Debug().
				Str("witch_id", w.ID).
				Str("magical_girl_id", w.MagicalGirlID).
				Msg("dangling magical girl link")
		}
	}
	return nil
}
