package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/middleware"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/forgo/madoka/api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockResourceService[T any, In any] struct {
	mock.Mock
}

func (m *mockResourceService[T, In]) List(ctx context.Context) ([]*T, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*T)
	return items, args.Error(1)
}

func (m *mockResourceService[T, In]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *mockResourceService[T, In]) Create(ctx context.Context, in *In) (*T, error) {
	args := m.Called(ctx, in)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *mockResourceService[T, In]) Update(ctx context.Context, id string, in *In) (*T, error) {
	args := m.Called(ctx, id, in)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *mockResourceService[T, In]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMagicalGirlRepo struct {
	mock.Mock
}

func (m *mockMagicalGirlRepo) GetAll(ctx context.Context) ([]*model.MagicalGirl, error) {
	args := m.Called(ctx)
	girls, _ := args.Get(0).([]*model.MagicalGirl)
	return girls, args.Error(1)
}

func (m *mockMagicalGirlRepo) GetByID(ctx context.Context, id string) (*model.MagicalGirl, error) {
	args := m.Called(ctx, id)
	girl, _ := args.Get(0).(*model.MagicalGirl)
	return girl, args.Error(1)
}

func (m *mockMagicalGirlRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.MagicalGirl, error) {
	args := m.Called(ctx, ids)
	girls, _ := args.Get(0).([]*model.MagicalGirl)
	return girls, args.Error(1)
}

func (m *mockMagicalGirlRepo) FindByName(ctx context.Context, name, excludeID string) (*model.MagicalGirl, error) {
	args := m.Called(ctx, name, excludeID)
	girl, _ := args.Get(0).(*model.MagicalGirl)
	return girl, args.Error(1)
}

func (m *mockMagicalGirlRepo) Create(ctx context.Context, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	args := m.Called(ctx, in)
	girl, _ := args.Get(0).(*model.MagicalGirl)
	return girl, args.Error(1)
}

func (m *mockMagicalGirlRepo) Update(ctx context.Context, id string, in *model.MagicalGirlInput) (*model.MagicalGirl, error) {
	args := m.Called(ctx, id, in)
	girl, _ := args.Get(0).(*model.MagicalGirl)
	return girl, args.Error(1)
}

func (m *mockMagicalGirlRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type (
	girlService  = mockResourceService[model.MagicalGirl, model.MagicalGirlInput]
	witchService = mockResourceService[model.Witch, model.WitchInput]
)

// ============================================================================
// Helpers
// ============================================================================

func newTestEcho[T any, In any](svc ResourceService[T, In], path string) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	NewResourceHandler[T, In](svc).Register(e.Group(path))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	var pd model.ProblemDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pd))
	return pd
}

// ============================================================================
// Magical Girl Routes
// ============================================================================

func TestMagicalGirls_List(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("List", mock.Anything).Return([]*model.MagicalGirl{
		{ID: "1", Name: "Madoka", SoulGemColor: "Pink", Weapon: model.WeaponBow, PowerLevel: 50},
		{ID: "2", Name: "Homura", SoulGemColor: "Purple", Weapon: model.WeaponShield, PowerLevel: 80},
	}, nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodGet, "/magicalgirls", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Madoka", body[0]["name"])
	assert.Equal(t, "1", body[0]["_id"])
	svc.AssertExpectations(t)
}

func TestMagicalGirls_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("List", mock.Anything).Return(nil, nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodGet, "/magicalgirls", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestMagicalGirls_Create(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in *model.MagicalGirlInput) bool {
		return in.Name != nil && *in.Name == "Sayaka" && in.PowerLevel != nil && *in.PowerLevel == 40
	})).Return(&model.MagicalGirl{
		ID: "abc123", Name: "Sayaka", SoulGemColor: "Blue", Weapon: model.WeaponSword, PowerLevel: 40,
	}, nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodPost, "/magicalgirls",
		`{"name":"Sayaka","soulGemColor":"Blue","weapon":"Sword","powerLevel":40}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "abc123", body["_id"])
	assert.Equal(t, "Sayaka", body["name"])
	svc.AssertExpectations(t)
}

func TestMagicalGirls_Get(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Get", mock.Anything, "1").Return(&model.MagicalGirl{
		ID: "1", Name: "Mami", SoulGemColor: "Yellow", Weapon: model.WeaponGun, PowerLevel: 60,
	}, nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodGet, "/magicalgirls/1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Mami"`)
}

func TestMagicalGirls_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Get", mock.Anything, "507f1f77bcf86cd799439011").Return(nil, service.ErrMagicalGirlNotFound)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodGet, "/magicalgirls/507f1f77bcf86cd799439011", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Magical girl not found", decodeProblem(t, rr).Detail)
}

func TestMagicalGirls_Update(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Update", mock.Anything, "1", mock.AnythingOfType("*model.MagicalGirlInput")).
		Return(&model.MagicalGirl{ID: "1"}, nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodPut, "/magicalgirls/1",
		`{"name":"Madoka","soulGemColor":"Pink","weapon":"Bow","powerLevel":55}`)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestMagicalGirls_Update_Conflict(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Update", mock.Anything, "1", mock.Anything).Return(nil, service.ErrMagicalGirlNameExists)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodPut, "/magicalgirls/1", `{"name":"Homura"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestMagicalGirls_Delete(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("Delete", mock.Anything, "1").Return(nil)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodDelete, "/magicalgirls/1", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}

func TestMagicalGirls_MalformedBody(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	e := newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls")

	rr := do(e, http.MethodPost, "/magicalgirls", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Request body must be valid JSON", decodeProblem(t, rr).Detail)

	rr = do(e, http.MethodPost, "/magicalgirls", `{"name":"Kyoko","powerLevel":"high"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Field powerLevel has the wrong type", decodeProblem(t, rr).Detail)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMagicalGirls_StoreUnavailable(t *testing.T) {
	t.Parallel()

	svc := new(girlService)
	svc.On("List", mock.Anything).Return(nil, database.ErrConnection)

	rr := do(newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls"), http.MethodGet, "/magicalgirls", "")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotContains(t, rr.Body.String(), database.ErrConnection.Error())
}

// ============================================================================
// Validation Messages
// ============================================================================

// Runs the real service over a repository that must never be reached
func TestMagicalGirls_Create_ValidationMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid weapon", `{"name":"Test","soulGemColor":"Red","weapon":"InvalidWeapon","powerLevel":10}`, "Weapon must be one of: Bow, Spear, Sword, Gun, Shield or Other"},
		{"name too short", `{"name":"A","soulGemColor":"Red","weapon":"Sword","powerLevel":10}`, "Name must be at least 2 characters long"},
		{"power level too high", `{"name":"Test","soulGemColor":"Red","weapon":"Sword","powerLevel":150}`, "Maximum power level is 100"},
		{"power level too low", `{"name":"Test","soulGemColor":"Red","powerLevel":-1}`, "Minimum power level is 0"},
		{"missing soul gem color", `{"name":"Test","weapon":"Sword","powerLevel":10}`, "Soul gem color is required"},
		{"missing name", `{"soulGemColor":"Red","powerLevel":10}`, "Name is required"},
		{"missing power level", `{"name":"Test","soulGemColor":"Red"}`, "Power level is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := new(mockMagicalGirlRepo)
			svc := service.NewMagicalGirlService(service.MagicalGirlServiceConfig{Repo: repo})
			e := newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls")

			rr := do(e, http.MethodPost, "/magicalgirls", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.message)
			repo.AssertExpectations(t)
		})
	}
}

func TestMagicalGirls_Create_EmptyBodyListsEveryRequiredField(t *testing.T) {
	t.Parallel()

	svc := service.NewMagicalGirlService(service.MagicalGirlServiceConfig{Repo: new(mockMagicalGirlRepo)})
	e := newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls")

	rr := do(e, http.MethodPost, "/magicalgirls", "")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	pd := decodeProblem(t, rr)
	assert.Equal(t, "Name is required; Soul gem color is required; Power level is required", pd.Detail)
	assert.Len(t, pd.Errors, 3)
}

func TestMagicalGirls_Update_ValidatesMergedRecord(t *testing.T) {
	t.Parallel()

	repo := new(mockMagicalGirlRepo)
	repo.On("GetByID", mock.Anything, "1").Return(&model.MagicalGirl{
		ID: "1", Name: "Madoka", SoulGemColor: "Pink", Weapon: model.WeaponBow, PowerLevel: 50,
	}, nil)
	svc := service.NewMagicalGirlService(service.MagicalGirlServiceConfig{Repo: repo})
	e := newTestEcho[model.MagicalGirl, model.MagicalGirlInput](svc, "/magicalgirls")

	rr := do(e, http.MethodPut, "/magicalgirls/1", `{"powerLevel":101}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Maximum power level is 100")
	repo.AssertExpectations(t)
}

// ============================================================================
// Witch Routes
// ============================================================================

func TestWitches_List(t *testing.T) {
	t.Parallel()

	svc := new(witchService)
	svc.On("List", mock.Anything).Return([]*model.Witch{
		{ID: "1", Name: "Gertrud", BarrierType: model.BarrierLabyrinth, DangerLevel: 5},
		{ID: "2", Name: "Charlotte", BarrierType: model.BarrierLabyrinth, DangerLevel: 7,
			MagicalGirl: &model.MagicalGirl{ID: "m", Name: "Mami", SoulGemColor: "Yellow", PowerLevel: 60}},
	}, nil)

	rr := do(newTestEcho[model.Witch, model.WitchInput](svc, "/witches"), http.MethodGet, "/witches", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Gertrud", body[0]["name"])
	assert.NotContains(t, body[0], "magicalGirl")
	embedded, ok := body[1]["magicalGirl"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mami", embedded["name"])
}

func TestWitches_Create(t *testing.T) {
	t.Parallel()

	svc := new(witchService)
	svc.On("Create", mock.Anything, mock.AnythingOfType("*model.WitchInput")).Return(&model.Witch{
		ID: "abc123", Name: "Ophelia", BarrierType: model.BarrierPocket, DangerLevel: 8,
	}, nil)

	rr := do(newTestEcho[model.Witch, model.WitchInput](svc, "/witches"), http.MethodPost, "/witches",
		`{"name":"Ophelia","barrierType":"Pocket","dangerLevel":8}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"_id":"abc123"`)
	assert.Contains(t, rr.Body.String(), `"name":"Ophelia"`)
}

func TestWitches_Get(t *testing.T) {
	t.Parallel()

	svc := new(witchService)
	svc.On("Get", mock.Anything, "1").Return(&model.Witch{
		ID: "1", Name: "Walpurgis", BarrierType: model.BarrierReality, DangerLevel: 10,
	}, nil)
	svc.On("Get", mock.Anything, "507f1f77bcf86cd799439011").Return(nil, service.ErrWitchNotFound)
	e := newTestEcho[model.Witch, model.WitchInput](svc, "/witches")

	rr := do(e, http.MethodGet, "/witches/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Walpurgis"`)

	rr = do(e, http.MethodGet, "/witches/507f1f77bcf86cd799439011", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWitches_Create_ValidationMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid barrier", `{"name":"Test","barrierType":"Invalid","dangerLevel":5}`, "Barrier type must be: Labyrinth, Pocket, Reality or Other"},
		{"danger too high", `{"name":"Test","barrierType":"Labyrinth","dangerLevel":15}`, "Maximum danger level is 10"},
		{"danger too low", `{"name":"Test","dangerLevel":-3}`, "Minimum danger level is 0"},
		{"missing name", `{"barrierType":"Labyrinth","dangerLevel":5}`, "Name is required"},
		{"missing danger", `{"name":"Test"}`, "Danger level is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := service.NewWitchService(service.WitchServiceConfig{MagicalGirls: new(mockMagicalGirlRepo)})
			e := newTestEcho[model.Witch, model.WitchInput](svc, "/witches")

			rr := do(e, http.MethodPost, "/witches", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.message)
		})
	}
}

func TestWitches_Create_UnknownMagicalGirl(t *testing.T) {
	t.Parallel()

	girls := new(mockMagicalGirlRepo)
	girls.On("GetByID", mock.Anything, "nobody").Return(nil, nil)
	svc := service.NewWitchService(service.WitchServiceConfig{MagicalGirls: girls})
	e := newTestEcho[model.Witch, model.WitchInput](svc, "/witches")

	rr := do(e, http.MethodPost, "/witches", `{"name":"Elly","dangerLevel":6,"magicalGirl":"nobody"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, []model.FieldError{{Field: "magicalGirl", Message: "Magical girl not found"}}, decodeProblem(t, rr).Errors)
	girls.AssertExpectations(t)
}

func TestWitches_Delete_AlwaysNoContent(t *testing.T) {
	t.Parallel()

	svc := new(witchService)
	svc.On("Delete", mock.Anything, "never-existed").Return(nil)

	rr := do(newTestEcho[model.Witch, model.WitchInput](svc, "/witches"), http.MethodDelete, "/witches/never-existed", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
