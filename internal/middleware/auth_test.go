package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lshigami/analyquiz/config"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
	"github.com/lshigami/analyquiz/internal/service"
)

func newRouter(t *testing.T) (*gin.Engine, service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{JWT: config.JWT{SecretKey: "test-secret", ExpireMinutes: 30}}
	authService := service.NewAuthService(repository.NewUserRepository(db), cfg)

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(authService).RequireAuth(), func(ctx *gin.Context) {
		user := CurrentUser(ctx)
		if user == nil {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "no user in context"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return router, authService
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router, authService := newRouter(t)

	if _, err := authService.Signup(dto.SignupRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, err := authService.CreateAccessToken("alice@example.com", 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	router, _ := newRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"bare token", "sometoken"},
		{"empty bearer", "Bearer "},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, w.Code)
		}
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
