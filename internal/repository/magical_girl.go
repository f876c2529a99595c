package repository

import (
	"context"
	"fmt"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
)

// MagicalGirlRepository handles magical girl data access
type MagicalGirlRepository struct {
	docs *Collection[model.MagicalGirl]
}

// NewMagicalGirlRepository creates a new magical girl repository
func NewMagicalGirlRepository(db database.Database) *MagicalGirlRepository {
	return &MagicalGirlRepository{
		docs: NewCollection(db, model.MagicalGirlTableName, parseMagicalGirl),
	}
}

// GetAll retrieves every magical girl in insertion order
func (r *MagicalGirlRepository) GetAll(ctx context.Context) ([]*model.MagicalGirl, error) {
	return r.docs.FindAll(ctx)
}

// GetByID retrieves a magical girl by key, nil if absent
func (r *MagicalGirlRepository) GetByID(ctx context.Context, id string) (*model.MagicalGirl, error) {
	return r.docs.FindByID(ctx, id)
}

// GetByIDs retrieves the magical girls with the given keys
func (r *MagicalGirlRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.MagicalGirl, error) {
	return r.docs.FindByIDs(ctx, ids)
}

// FindByName returns a magical girl with the given name other than excludeID, nil if none
func (r *MagicalGirlRepository) FindByName(ctx context.Context, name, excludeID string) (*model.MagicalGirl, error) {
	return r.docs.FindOne(ctx, Filter{
		Equals:    map[string]interface{}{"name": name},
		ExcludeID: excludeID,
	})
}

// Create stores a new magical girl
func (r *MagicalGirlRepository) Create(ctx context.Context, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	return r.docs.Create(ctx, magicalGirlContent(in))
}

// Update writes the supplied fields, returning nil when the record is gone
func (r *MagicalGirlRepository) Update(ctx context.Context, id string, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	return r.docs.UpdateByID(ctx, id, magicalGirlContent(in))
}

// Delete removes a magical girl
func (r *MagicalGirlRepository) Delete(ctx context.Context, id string) error {
	return r.docs.DeleteByID(ctx, id)
}

func magicalGirlContent(in *model.MagicalGirlInput) map[string]interface{} {
	content := make(map[string]interface{})
	if in.Name != nil {
		content["name"] = *in.Name
	}
	if in.SoulGemColor != nil {
		content["soul_gem_color"] = *in.SoulGemColor
	}
	if in.Weapon != nil {
		content["weapon"] = *in.Weapon
	}
	if in.PowerLevel != nil {
		content["power_level"] = *in.PowerLevel
	}
	return content
}

func parseMagicalGirl(row map[string]interface{}) (*model.MagicalGirl, error) {
	id := recordKey(row["id"])
	if id == "" {
		return nil, fmt.Errorf("%w: magical_girl row without id", database.ErrQuery)
	}
	return &model.MagicalGirl{
		ID:           id,
		Name:         getString(row, "name"),
		SoulGemColor: getString(row, "soul_gem_color"),
		Weapon:       model.Weapon(getString(row, "weapon")),
		PowerLevel:   getInt(row, "power_level"),
		CreatedOn:    getTime(row, "created_on"),
		UpdatedOn:    getTime(row, "updated_on"),
	}, nil
}
