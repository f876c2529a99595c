package repository

import (
	"context"
	"fmt"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
)

// witchMagicalGirlField stores the record link to magical_girl
const witchMagicalGirlField = "magical_girl"

// WitchRepository handles witch data access.
// The magical girl link is returned as a key; resolving it is a separate call.
type WitchRepository struct {
	docs *Collection[model.Witch]
}

// NewWitchRepository creates a new witch repository
func NewWitchRepository(db database.Database) *WitchRepository {
	return &WitchRepository{
		docs: NewCollection(db, model.WitchTableName, parseWitch),
	}
}

// GetAll retrieves every witch in insertion order
func (r *WitchRepository) GetAll(ctx context.Context) ([]*model.Witch, error) {
	return r.docs.FindAll(ctx)
}

// GetByID retrieves a witch by key, nil if absent
func (r *WitchRepository) GetByID(ctx context.Context, id string) (*model.Witch, error) {
	return r.docs.FindByID(ctx, id)
}

// FindByName returns a witch with the given name other than excludeID, nil if none
func (r *WitchRepository) FindByName(ctx context.Context, name, excludeID string) (*model.Witch, error) {
	return r.docs.FindOne(ctx, Filter{
		Equals:    map[string]interface{}{"name": name},
		ExcludeID: excludeID,
	})
}

// Create stores a new witch
func (r *WitchRepository) Create(ctx context.Context, in *model.WitchInput) (*model.Witch, error) {
	return r.docs.Create(ctx, witchContent(in))
}

// Update writes the supplied fields. An empty magical girl key removes the link.
func (r *WitchRepository) Update(ctx context.Context, id string, in *model.WitchInput) (*model.Witch, error) {
	var unset []string
	if in.MagicalGirl != nil && *in.MagicalGirl == "" {
		unset = append(unset, witchMagicalGirlField)
	}
	return r.docs.UpdateByID(ctx, id, witchContent(in), unset...)
}

// Delete removes a witch
func (r *WitchRepository) Delete(ctx context.Context, id string) error {
	return r.docs.DeleteByID(ctx, id)
}

func witchContent(in *model.WitchInput) map[string]interface{} {
	content := make(map[string]interface{})
	if in.Name != nil {
		content["name"] = *in.Name
	}
	if in.BarrierType != nil {
		content["barrier_type"] = *in.BarrierType
	}
	if in.DangerLevel != nil {
		content["danger_level"] = *in.DangerLevel
	}
	if in.HasMagicalGirl() {
		content[witchMagicalGirlField] = recordLink(model.MagicalGirlTableName, *in.MagicalGirl)
	}
	return content
}

func parseWitch(row map[string]interface{}) (*model.Witch, error) {
	id := recordKey(row["id"])
	if id == "" {
		return nil, fmt.Errorf("%w: witch row without id", database.ErrQuery)
	}
	return &model.Witch{
		ID:            id,
		Name:          getString(row, "name"),
		BarrierType:   model.BarrierType(getString(row, "barrier_type")),
		DangerLevel:   getInt(row, "danger_level"),
		MagicalGirlID: recordKey(row[witchMagicalGirlField]),
		CreatedOn:     getTime(row, "created_on"),
		UpdatedOn:     getTime(row, "updated_on"),
	}, nil
}
