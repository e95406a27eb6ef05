package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nidhi/internal/handlers"
	"nidhi/internal/logger"
	"nidhi/internal/middleware"
	"nidhi/internal/models"
	"nidhi/internal/services"
	"nidhi/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Asset{},
		&models.Liability{},
		&models.CustomCategoryTemplate{},
		&models.Transaction{},
		&models.RecurringSchedule{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	assetService := services.NewAssetService(db)
	liabilityService := services.NewLiabilityService(db)
	templateService := services.NewCustomCategoryService(db)
	transactionService := services.NewTransactionService(db)
	scheduleService := services.NewRecurringScheduleService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	liabilityHandler := handlers.NewLiabilityHandler(liabilityService, auditService)
	netWorthHandler := handlers.NewNetWorthHandler(assetService, liabilityService)
	templateHandler := handlers.NewCustomCategoryHandler(templateService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	scheduleHandler := handlers.NewRecurringScheduleHandler(scheduleService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/net-worth", netWorthHandler.GetNetWorth)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetUserAssets)
	assets.GET("/summary", assetHandler.GetAssetSummary)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	liabilities := protected.Group("/liabilities")
	liabilities.POST("", liabilityHandler.CreateLiability)
	liabilities.GET("", liabilityHandler.GetUserLiabilities)
	liabilities.GET("/summary", liabilityHandler.GetLiabilitySummary)
	liabilities.GET("/:id", liabilityHandler.GetLiabilityByID)
	liabilities.PUT("/:id", liabilityHandler.UpdateLiability)
	liabilities.DELETE("/:id", liabilityHandler.DeleteLiability)

	customCategories := protected.Group("/custom-categories")
	customCategories.POST("", templateHandler.CreateTemplate)
	customCategories.GET("", templateHandler.ListTemplates)
	customCategories.GET("/:id", templateHandler.GetTemplateByID)
	customCategories.PUT("/:id", templateHandler.UpdateTemplate)
	customCategories.DELETE("/:id", templateHandler.DeleteTemplate)
	customCategories.GET("/:id/fields", templateHandler.HydrateFields)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	schedules := protected.Group("/schedules")
	schedules.POST("", scheduleHandler.CreateSchedule)
	schedules.GET("", scheduleHandler.GetSchedules)
	schedules.GET("/upcoming", scheduleHandler.GetUpcomingPayments)
	schedules.GET("/:id", scheduleHandler.GetScheduleByID)
	schedules.PUT("/:id", scheduleHandler.UpdateSchedule)
	schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseData parses the response body and unwraps the data field of the
// success envelope.
func parseData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in response, body: %s", rec.Body.String())
	}
	return data
}

// parseDataList unwraps a list-valued data field of the success envelope.
func parseDataList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	data, ok := result["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array in response, body: %s", rec.Body.String())
	}
	return data
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseData(t, rec)
	user := data["user"].(map[string]interface{})
	return data["access_token"].(string), data["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseData(t, rec)
	return data["access_token"].(string), data["refresh_token"].(string)
}

// createAsset creates an asset through the API and returns its ID.
func (app *testApp) createAsset(t *testing.T, token, name string, value int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"category":"bank","value":%d,"owner":"Test"}`, name, value)
	rec := app.request("POST", "/api/v1/assets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseData(t, rec)["id"].(string)
}

// createLiability creates a liability through the API and returns its ID.
func (app *testApp) createLiability(t *testing.T, token, name string, balance int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"category":"loan","balance":%d,"owner":"Test"}`, name, balance)
	rec := app.request("POST", "/api/v1/liabilities", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create liability failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseData(t, rec)["id"].(string)
}

// getAssetValue reads an asset back through the API and returns its value.
func (app *testApp) getAssetValue(t *testing.T, token, assetID string) int64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/assets/"+assetID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get asset failed: %d %s", rec.Code, rec.Body.String())
	}
	return int64(parseData(t, rec)["value"].(float64))
}

// getLiabilityBalance reads a liability back through the API and returns its balance.
func (app *testApp) getLiabilityBalance(t *testing.T, token, liabilityID string) int64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/liabilities/"+liabilityID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get liability failed: %d %s", rec.Code, rec.Body.String())
	}
	return int64(parseData(t, rec)["balance"].(float64))
}
