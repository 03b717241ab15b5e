package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ecorewards/internal/auth"
	"ecorewards/internal/cache"
	"ecorewards/internal/domain"
	"ecorewards/internal/middleware"
	"ecorewards/internal/rewards"
	"ecorewards/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestRouter wires the full route table against an in-memory database
// and the given cache (cache.New(nil) disables caching).
func newTestRouter(t *testing.T, cch *cache.Cache) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Bin{}, &domain.Transaction{}))

	st := store.New(db)
	svc := rewards.NewService(st)

	r := gin.New()
	r.POST("/auth/register", RegisterHandler(st))
	r.POST("/auth/login", LoginHandler(st, testSecret))
	r.GET("/products", ListProductsHandler(svc, cch))
	r.POST("/scan/verify", VerifyBinHandler(svc, cch))

	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	authGroup.POST("/scan", SettleHandler(svc, cch))
	authGroup.GET("/wallet", GetWalletHandler(svc, cch))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(testSecret), middleware.AdminOnlyMiddleware(st))
	adminGroup.GET("", AdminListHandler(svc))
	adminGroup.POST("", AdminCreateHandler(svc, cch))
	adminGroup.PUT("", AdminUpdateHandler(svc, cch))
	adminGroup.DELETE("", AdminDeleteHandler(svc, st, cch))

	return r, st
}

// perform runs a JSON request through the router.
func perform(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// seedScanFixtures creates the demo bin/product/user triple and returns a
// token for the user.
func seedScanFixtures(t *testing.T, st store.Store) (product *domain.Product, user *domain.User, token string) {
	t.Helper()
	ctx := context.Background()

	bin := &domain.Bin{
		BinID:         "BIN-DEL-001",
		Location:      domain.Location{Name: "Central Park, Delhi", Address: "Gate 2, Connaught Place"},
		AcceptedTypes: []domain.RecyclableType{domain.RecyclablePlastic, domain.RecyclablePaper},
		QRCode:        rewards.PlaceholderQR("BIN-DEL-001"),
		Active:        true,
	}
	require.NoError(t, st.Bins().Create(ctx, bin))

	product = &domain.Product{
		Name:           "Eco Fresh Drink",
		Price:          95,
		RewardAmount:   5,
		Category:       domain.CategoryBeverage,
		RecyclableType: domain.RecyclablePlastic,
		Active:         true,
	}
	require.NoError(t, st.Products().Create(ctx, product))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user = &domain.User{
		Email:         "eco.user@example.com",
		Password:      string(hash),
		Name:          "Eco Warrior",
		WalletBalance: 35,
		Role:          domain.RoleUser,
	}
	require.NoError(t, st.Users().Create(ctx, user))

	token, err = auth.GenerateJWT(user.ID, user.Role, testSecret)
	require.NoError(t, err)
	return product, user, token
}

// seedAdmin creates an admin user and returns their token.
func seedAdmin(t *testing.T, st store.Store) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{
		Email:    "admin@ecorewards.app",
		Password: string(hash),
		Name:     "Program Admin",
		Role:     domain.RoleAdmin,
	}
	require.NoError(t, st.Users().Create(context.Background(), admin))
	token, err := auth.GenerateJWT(admin.ID, admin.Role, testSecret)
	require.NoError(t, err)
	return token
}
