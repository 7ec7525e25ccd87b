package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admin-service/internal/authz"
	"admin-service/internal/identity"
	"admin-service/internal/mocks"
)

func setupAuthRouter(directory identity.Directory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	policy := authz.NewAllowList([]string{"admin@example.com"})
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(directory, policy), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   c.GetString("adminUID"),
			"email": c.GetString("adminEmail"),
		})
	})
	return r
}

func TestAdminAuthMissingHeader(t *testing.T) {
	directory := new(mocks.DirectoryMock)
	router := setupAuthRouter(directory)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	directory.AssertNotCalled(t, "VerifyIDToken", mock.Anything, mock.Anything)
}

func TestAdminAuthMalformedHeader(t *testing.T) {
	directory := new(mocks.DirectoryMock)
	router := setupAuthRouter(directory)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "tok-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	directory.AssertNotCalled(t, "VerifyIDToken", mock.Anything, mock.Anything)
}

func TestAdminAuthInvalidToken(t *testing.T) {
	directory := new(mocks.DirectoryMock)
	router := setupAuthRouter(directory)

	directory.On("VerifyIDToken", mock.Anything, "tok-123").Return(identity.Token{}, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	directory.AssertExpectations(t)
}

func TestAdminAuthNotOnAllowList(t *testing.T) {
	directory := new(mocks.DirectoryMock)
	router := setupAuthRouter(directory)

	directory.On("VerifyIDToken", mock.Anything, "tok-123").Return(identity.Token{UID: "u1", Email: "user@example.com"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "PERMISSION_DENIED")
	directory.AssertExpectations(t)
}

func TestAdminAuthAllowed(t *testing.T) {
	directory := new(mocks.DirectoryMock)
	router := setupAuthRouter(directory)

	directory.On("VerifyIDToken", mock.Anything, "tok-123").Return(identity.Token{UID: "admin-1", Email: "Admin@Example.com"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin-1")
	directory.AssertExpectations(t)
}
