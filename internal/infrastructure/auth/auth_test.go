package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"promptkeep/services/message-api/internal/config"
	domainuser "promptkeep/services/message-api/internal/domain/user"
	"promptkeep/services/message-api/internal/infrastructure/auth"
)

type mockUserRepo struct {
	ensured []string
	fail    error
}

func (m *mockUserRepo) EnsureExists(ctx context.Context, id string, email *string) (*domainuser.User, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	m.ensured = append(m.ensured, id)
	return &domainuser.User{ID: id, Email: email}, nil
}

const testSecret = "test-secret"

func newRouter(t *testing.T, users *mockUserRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{AuthAudience: "authenticated", AuthSecret: testSecret}
	validator, err := auth.NewValidator(context.Background(), cfg, zerolog.Nop(), users)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	router := gin.New()
	router.GET("/whoami", validator.Middleware(), func(c *gin.Context) {
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})
	return router
}

func do(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	router := newRouter(t, &mockUserRepo{})
	if w := do(router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := do(router, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme: status = %d, want 401", w.Code)
	}
}

func TestMiddlewareRejectsBadSignature(t *testing.T) {
	router := newRouter(t, &mockUserRepo{})
	token, err := auth.NewDevToken("wrong-secret", "user-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("NewDevToken: %v", err)
	}
	if w := do(router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	router := newRouter(t, &mockUserRepo{})
	token, err := auth.NewDevToken(testSecret, "user-1", nil, -time.Minute)
	if err != nil {
		t.Fatalf("NewDevToken: %v", err)
	}
	if w := do(router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMiddlewareRejectsWrongAudience(t *testing.T) {
	router := newRouter(t, &mockUserRepo{})
	claims := jwt.MapClaims{
		"sub": "user-1",
		"aud": "somebody-else",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if w := do(router, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMiddlewareAcceptsValidTokenAndSyncsUser(t *testing.T) {
	users := &mockUserRepo{}
	router := newRouter(t, users)

	email := "dev@example.com"
	token, err := auth.NewDevToken(testSecret, "user-1", &email, time.Minute)
	if err != nil {
		t.Fatalf("NewDevToken: %v", err)
	}

	w := do(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if len(users.ensured) != 1 || users.ensured[0] != "user-1" {
		t.Errorf("user sync calls = %v, want one for user-1", users.ensured)
	}
}
