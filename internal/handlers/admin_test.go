package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admin-service/internal/mocks"
	"admin-service/internal/models"
)

func setupAdminRouter(handler *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("adminUID", "admin-1")
		c.Set("adminEmail", "admin@example.com")
		c.Next()
	})
	r.DELETE("/admin/users/:user_id", handler.DeleteUserCompletely)
	r.POST("/admin/users/:user_id/ban", handler.BanUser)
	r.POST("/admin/users/:user_id/unban", handler.UnbanUser)
	r.GET("/admin/stats", handler.GetAdminStats)
	r.POST("/admin/migrations/auth-users", handler.MigrateAuthUsers)
	return r
}

func newTestHandler() (*AdminHandler, *mocks.UserRepositoryMock, *mocks.PostRepositoryMock, *mocks.VocabularyRepositoryMock, *mocks.ConversationRepositoryMock, *mocks.BanRepositoryMock, *mocks.DirectoryMock) {
	users := new(mocks.UserRepositoryMock)
	posts := new(mocks.PostRepositoryMock)
	vocab := new(mocks.VocabularyRepositoryMock)
	convs := new(mocks.ConversationRepositoryMock)
	bans := new(mocks.BanRepositoryMock)
	directory := new(mocks.DirectoryMock)
	handler := NewAdminHandler(users, posts, vocab, convs, bans, directory, nil)
	return handler, users, posts, vocab, convs, bans, directory
}

func TestBanUserSuccessDefaultReason(t *testing.T) {
	handler, _, _, _, _, bans, directory := newTestHandler()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return fixed }
	router := setupAdminRouter(handler)

	directory.On("SetDisabled", mock.Anything, "user-2", true).Return(nil).Once()
	bans.On("Upsert", mock.Anything, models.BannedUser{
		UID:      "user-2",
		BannedAt: fixed,
		BannedBy: "admin-1",
		Reason:   "No reason provided",
	}).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/users/user-2/ban", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])
	directory.AssertExpectations(t)
	bans.AssertExpectations(t)
}

func TestBanUserCustomReason(t *testing.T) {
	handler, _, _, _, _, bans, directory := newTestHandler()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return fixed }
	router := setupAdminRouter(handler)

	directory.On("SetDisabled", mock.Anything, "user-2", true).Return(nil).Once()
	bans.On("Upsert", mock.Anything, models.BannedUser{
		UID:      "user-2",
		BannedAt: fixed,
		BannedBy: "admin-1",
		Reason:   "spam",
	}).Return(nil).Once()

	body := bytes.NewBufferString(`{"reason":"spam"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/users/user-2/ban", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	directory.AssertExpectations(t)
	bans.AssertExpectations(t)
}

func TestBanUserSelf(t *testing.T) {
	handler, _, _, _, _, bans, directory := newTestHandler()
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/admin/users/admin-1/ban", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INVALID_ARGUMENT", resp["kind"])
	directory.AssertNotCalled(t, "SetDisabled", mock.Anything, mock.Anything, mock.Anything)
	bans.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestBanUserDirectoryError(t *testing.T) {
	handler, _, _, _, _, bans, directory := newTestHandler()
	router := setupAdminRouter(handler)

	directory.On("SetDisabled", mock.Anything, "user-2", true).Return(assert.AnError).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/users/user-2/ban", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	bans.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	directory.AssertExpectations(t)
}

func TestUnbanUserSuccess(t *testing.T) {
	handler, _, _, _, _, bans, directory := newTestHandler()
	router := setupAdminRouter(handler)

	directory.On("SetDisabled", mock.Anything, "user-2", false).Return(nil).Once()
	bans.On("Delete", mock.Anything, "user-2").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/admin/users/user-2/unban", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])
	directory.AssertExpectations(t)
	bans.AssertExpectations(t)
}

func TestGetAdminStats(t *testing.T) {
	handler, users, posts, _, convs, _, _ := newTestHandler()
	router := setupAdminRouter(handler)

	users.On("CountChatUsers", mock.Anything).Return(42, nil).Once()
	posts.On("CountPosts", mock.Anything).Return(7, nil).Once()
	convs.On("CountConversations", mock.Anything).Return(3, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 42, resp["total_users"])
	assert.EqualValues(t, 7, resp["total_posts"])
	assert.EqualValues(t, 3, resp["total_conversations"])
	users.AssertExpectations(t)
	posts.AssertExpectations(t)
	convs.AssertExpectations(t)
}

func TestGetAdminStatsCountError(t *testing.T) {
	handler, users, posts, _, convs, _, _ := newTestHandler()
	router := setupAdminRouter(handler)

	users.On("CountChatUsers", mock.Anything).Return(0, assert.AnError).Maybe()
	posts.On("CountPosts", mock.Anything).Return(7, nil).Maybe()
	convs.On("CountConversations", mock.Anything).Return(3, nil).Maybe()

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INTERNAL", resp["kind"])
}
