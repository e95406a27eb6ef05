package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/services"
)

type mockAssetService struct {
	createAssetFn     func(userID string, input services.CreateAssetInput) (*models.Asset, error)
	getUserAssetsFn   func(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Asset], error)
	getAssetByIDFn    func(userID, assetID string) (*models.Asset, error)
	updateAssetFn     func(userID, assetID string, input services.UpdateAssetInput) (*models.Asset, error)
	deleteAssetFn     func(userID, assetID string) error
	getAssetSummaryFn func(userID string) (*services.RecordSummary, error)
}

func (m *mockAssetService) CreateAsset(userID string, input services.CreateAssetInput) (*models.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(userID, input)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) GetUserAssets(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Asset], error) {
	if m.getUserAssetsFn != nil {
		return m.getUserAssetsFn(userID, page, category)
	}
	return &pagination.PageResponse[models.Asset]{}, nil
}

func (m *mockAssetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	if m.getAssetByIDFn != nil {
		return m.getAssetByIDFn(userID, assetID)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) UpdateAsset(userID, assetID string, input services.UpdateAssetInput) (*models.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(userID, assetID, input)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) DeleteAsset(userID, assetID string) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(userID, assetID)
	}
	return nil
}

func (m *mockAssetService) GetAssetSummary(userID string) (*services.RecordSummary, error) {
	if m.getAssetSummaryFn != nil {
		return m.getAssetSummaryFn(userID)
	}
	return &services.RecordSummary{}, nil
}

var _ services.AssetServicer = (*mockAssetService)(nil)

func setupAssetRouter(handler *AssetHandler) *gin.Engine {
	r := gin.New()
	r.Use(injectUserID("user-1"))
	r.POST("/assets", handler.CreateAsset)
	r.GET("/assets", handler.GetUserAssets)
	r.GET("/assets/summary", handler.GetAssetSummary)
	r.GET("/assets/:id", handler.GetAssetByID)
	r.PUT("/assets/:id", handler.UpdateAsset)
	r.DELETE("/assets/:id", handler.DeleteAsset)
	return r
}

func TestAssetHandler_CreateAsset(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockAssetService{
			createAssetFn: func(userID string, input services.CreateAssetInput) (*models.Asset, error) {
				return &models.Asset{
					Base:     models.Base{ID: "asset-1"},
					UserID:   userID,
					Name:     input.Name,
					Category: input.Category,
					Value:    input.Value,
				}, nil
			},
		}
		handler := NewAssetHandler(svc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets",
			`{"name":"HDFC Savings","category":"bank","value":10000,"owner":"Alice"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseData(t, rec)
		if data["name"] != "HDFC Savings" {
			t.Errorf("expected asset name, got %v", data["name"])
		}
		if data["value"] != float64(10000) {
			t.Errorf("expected value 10000, got %v", data["value"])
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets",
			`{"name":"HDFC Savings","category":"crypto_wallet","value":10000,"owner":"Alice"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing owner", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets",
			`{"name":"HDFC Savings","category":"bank","value":10000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("accepts custom fields", func(t *testing.T) {
		var gotFields models.CustomFieldList
		svc := &mockAssetService{
			createAssetFn: func(_ string, input services.CreateAssetInput) (*models.Asset, error) {
				gotFields = input.CustomFields
				return &models.Asset{}, nil
			},
		}
		handler := NewAssetHandler(svc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "POST", "/assets",
			`{"name":"Cold Wallet","category":"other","value":0,"owner":"Alice",`+
				`"custom_fields":[{"name":"Seed Location","type":"text","value":"safe"}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotFields) != 1 || gotFields[0].Name != "Seed Location" {
			t.Fatalf("expected custom field passed through, got %v", gotFields)
		}
		if gotFields[0].Value.Text() != "safe" {
			t.Errorf("expected field value 'safe', got %v", gotFields[0].Value)
		}
	})
}

func TestAssetHandler_GetUserAssets(t *testing.T) {
	t.Run("passes pagination and category through", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotCategory string
		svc := &mockAssetService{
			getUserAssetsFn: func(_ string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Asset], error) {
				gotPage = page
				gotCategory = category
				return &pagination.PageResponse[models.Asset]{}, nil
			},
		}
		handler := NewAssetHandler(svc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets?page=2&limit=10&category=bank", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPage.Page != 2 || gotPage.Limit != 10 {
			t.Errorf("expected page 2 limit 10, got %+v", gotPage)
		}
		if gotCategory != "bank" {
			t.Errorf("expected bank category, got %q", gotCategory)
		}
	})

	t.Run("returns 400 on limit above maximum", func(t *testing.T) {
		handler := NewAssetHandler(&mockAssetService{}, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets?limit=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_GetAssetByID(t *testing.T) {
	t.Run("returns 404 on missing asset", func(t *testing.T) {
		svc := &mockAssetService{
			getAssetByIDFn: func(_, _ string) (*models.Asset, error) {
				return nil, apperrors.ErrAssetNotFound
			},
		}
		handler := NewAssetHandler(svc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})
}

func TestAssetHandler_GetAssetSummary(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		svc := &mockAssetService{
			getAssetSummaryFn: func(_ string) (*services.RecordSummary, error) {
				return &services.RecordSummary{
					Total: 30000,
					ByCategory: []services.CategoryBreakdown{
						{Category: "bank", Total: 30000, Count: 2},
					},
				}, nil
			},
		}
		handler := NewAssetHandler(svc, &mockAuditService{})
		r := setupAssetRouter(handler)

		rec := doRequest(r, "GET", "/assets/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseData(t, rec)
		if data["total"] != float64(30000) {
			t.Errorf("expected total 30000, got %v", data["total"])
		}
	})
}
