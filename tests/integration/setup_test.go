package integration

import (
	"context"
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

	"medcast/internal/category"
	"medcast/internal/events"
	"medcast/internal/handlers"
	"medcast/internal/logger"
	"medcast/internal/middleware"
	"medcast/internal/models"
	"medcast/internal/services"
	"medcast/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB          *gorm.DB
	Router      *gin.Engine
	Coordinator *category.Coordinator
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
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Audio{},
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

	bus := events.NewBus()
	store := services.NewCategoryStore(db, bus)
	coordinator := category.NewCoordinator(store, bus)
	if err := coordinator.Refresh(context.Background()); err != nil {
		t.Fatalf("initial category load failed: %v", err)
	}

	// Services
	userService := services.NewUserService(db)
	audioService := services.NewAudioService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(coordinator, auditService)
	audioHandler := handlers.NewAudioHandler(audioService)

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

	// Listener-facing routes
	public := v1.Group("/public")
	public.GET("/categories/tree", categoryHandler.GetPublicTree)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/tree", categoryHandler.GetTree)
	categories.GET("/stats", categoryHandler.GetStats)
	categories.GET("/options", categoryHandler.GetOptions)
	categories.GET("/path", categoryHandler.GetPath)
	categories.POST("/delete-impact", categoryHandler.PreviewDelete)
	categories.POST("/delete", categoryHandler.DeleteCategories)
	categories.PATCH("/status", categoryHandler.BatchUpdateStatus)
	categories.PUT("/reorder", categoryHandler.ReorderCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.GET("/:id/subcategories", categoryHandler.GetSubcategoryOptions)
	categories.GET("/:id/audios", audioHandler.GetCategoryAudios)

	audios := protected.Group("/audios")
	audios.GET("/:id", audioHandler.GetAudio)

	return &testApp{DB: db, Router: router, Coordinator: coordinator}
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

// registerUser registers a new admin and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test Admin"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string), result["refresh_token"].(string)
}

// createCategory creates a category via the API and returns its id.
func (app *testApp) createCategory(t *testing.T, token, name string, parentID *string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	if parentID != nil {
		body = fmt.Sprintf(`{"name":%q,"parent_id":%q}`, name, *parentID)
	}
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	cat := result["category"].(map[string]interface{})
	return cat["id"].(string)
}
