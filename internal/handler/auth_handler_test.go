package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/internal/config"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
	"github.com/tradejournal/internal/service"
)

type memUserStore struct {
	users map[string]*models.User
	seq   int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) Create(user *models.User) error {
	m.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserStore) GetByID(id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserStore) ExistsByEmail(email string) (bool, error) {
	_, err := m.GetByEmail(email)
	return err == nil, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(newMemUserStore(), config.JWTConfig{
		Secret:      "test-secret",
		ExpireHours: 1,
	})
	authHandler := NewAuthHandler(authService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, middleware.AuthMiddleware(authService))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	router := newAuthRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"trader@example.com","password":"hunter22"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Code int `json:"code"`
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "trader@example.com", body.Data.Email)
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newAuthRouter()

	// Not an email address.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"not-an-email","password":"hunter22"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password below the minimum length.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"trader@example.com","password":"abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router := newAuthRouter()

	payload := `{"email":"trader@example.com","password":"hunter22"}`
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndMeFlow(t *testing.T) {
	router := newAuthRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"trader@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"trader@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Bearer", login.Data.TokenType)
	require.NotEmpty(t, login.Data.AccessToken)

	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", login.Data.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "trader@example.com", me.Data.Email)
}

func TestLoginWrongPasswordEndpoint(t *testing.T) {
	router := newAuthRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"trader@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"trader@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRejectsBadAuth(t *testing.T) {
	router := newAuthRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
