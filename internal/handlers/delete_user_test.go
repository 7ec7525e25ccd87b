package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admin-service/internal/models"
)

func expectCleanCascade(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/admin/users/user-2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDeleteUserCompletelySuccess(t *testing.T) {
	handler, users, posts, vocab, convs, _, directory := newTestHandler()
	router := setupAdminRouter(handler)

	posts.On("ListPostIDsByAuthor", mock.Anything, "user-2").Return([]string{"p1", "p2"}, nil).Once()
	posts.On("DeletePostWithComments", mock.Anything, "p1").Return(nil).Once()
	posts.On("DeletePostWithComments", mock.Anything, "p2").Return(nil).Once()
	posts.On("ListCommentsByAuthor", mock.Anything, "user-2").Return([]models.Comment{{ID: "c9", PostID: "p9", AuthorID: "user-2"}}, nil).Once()
	posts.On("DeleteCommentAndDecrementCount", mock.Anything, "c9", "p9").Return(nil).Once()

	vocab.On("DeleteEntriesForUser", mock.Anything, "user-2").Return(3, nil).Once()

	users.On("DeleteMetadata", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteProfile", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListFriendIDs", mock.Anything, "user-2").Return([]string{"f1"}, nil).Once()
	users.On("RemoveFriendEdge", mock.Anything, "f1", "user-2").Return(nil).Once()
	users.On("RemoveFriendEdge", mock.Anything, "user-2", "f1").Return(nil).Once()
	users.On("DeleteFriendRequestsTo", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListSentRequestRecipients", mock.Anything, "user-2").Return([]string{"r1"}, nil).Once()
	users.On("DeletePendingRequest", mock.Anything, "r1", "user-2").Return(nil).Once()
	users.On("DeleteSentRequest", mock.Anything, "user-2", "r1").Return(nil).Once()
	users.On("DeleteShareRequests", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteChatUser", mock.Anything, "user-2").Return(nil).Once()

	convs.On("ListConversationIDsForParticipant", mock.Anything, "user-2").Return([]string{"cv1"}, nil).Once()
	convs.On("DeleteConversationWithMessages", mock.Anything, "cv1").Return(nil).Once()

	directory.On("DeleteAccount", mock.Anything, "user-2").Return(nil).Once()

	rec := expectCleanCascade(t, router)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool            `json:"success"`
		Details DeletionDetails `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Details.AuthDeleted)
	assert.Equal(t, 2, resp.Details.PostsDeleted)
	assert.Equal(t, 3, resp.Details.VocabularyDeleted)
	assert.Equal(t, 1, resp.Details.ConversationsDeleted)
	assert.Equal(t, 1, resp.Details.FriendsRemoved)
	assert.Empty(t, resp.Details.Errors)

	users.AssertExpectations(t)
	posts.AssertExpectations(t)
	vocab.AssertExpectations(t)
	convs.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestDeleteUserCompletelySelf(t *testing.T) {
	handler, _, _, _, _, _, directory := newTestHandler()
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/admin-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	directory.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
}

func TestDeleteUserCompletelyPartialFailure(t *testing.T) {
	handler, users, posts, vocab, convs, _, directory := newTestHandler()
	router := setupAdminRouter(handler)

	posts.On("ListPostIDsByAuthor", mock.Anything, "user-2").Return([]string{}, nil).Once()
	posts.On("ListCommentsByAuthor", mock.Anything, "user-2").Return([]models.Comment{}, nil).Once()
	vocab.On("DeleteEntriesForUser", mock.Anything, "user-2").Return(0, nil).Once()
	users.On("DeleteMetadata", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteProfile", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListFriendIDs", mock.Anything, "user-2").Return([]string{}, nil).Once()
	users.On("DeleteFriendRequestsTo", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListSentRequestRecipients", mock.Anything, "user-2").Return([]string{}, nil).Once()
	users.On("DeleteShareRequests", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteChatUser", mock.Anything, "user-2").Return(nil).Once()
	convs.On("ListConversationIDsForParticipant", mock.Anything, "user-2").Return([]string{}, nil).Once()
	directory.On("DeleteAccount", mock.Anything, "user-2").Return(assert.AnError).Once()

	rec := expectCleanCascade(t, router)

	// the cascade never aborts, so a directory failure still yields 200
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool            `json:"success"`
		Details DeletionDetails `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.False(t, resp.Details.AuthDeleted)
	require.Len(t, resp.Details.Errors, 1)
	assert.Contains(t, resp.Details.Errors[0], "delete directory account")
	directory.AssertExpectations(t)
}

func TestDeleteUserCompletelyStageErrorDoesNotAbort(t *testing.T) {
	handler, users, posts, vocab, convs, _, directory := newTestHandler()
	router := setupAdminRouter(handler)

	posts.On("ListPostIDsByAuthor", mock.Anything, "user-2").Return(([]string)(nil), assert.AnError).Once()
	posts.On("ListCommentsByAuthor", mock.Anything, "user-2").Return([]models.Comment{}, nil).Once()
	vocab.On("DeleteEntriesForUser", mock.Anything, "user-2").Return(0, nil).Once()
	users.On("DeleteMetadata", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteProfile", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListFriendIDs", mock.Anything, "user-2").Return([]string{}, nil).Once()
	users.On("DeleteFriendRequestsTo", mock.Anything, "user-2").Return(nil).Once()
	users.On("ListSentRequestRecipients", mock.Anything, "user-2").Return([]string{}, nil).Once()
	users.On("DeleteShareRequests", mock.Anything, "user-2").Return(nil).Once()
	users.On("DeleteChatUser", mock.Anything, "user-2").Return(nil).Once()
	convs.On("ListConversationIDsForParticipant", mock.Anything, "user-2").Return([]string{}, nil).Once()
	directory.On("DeleteAccount", mock.Anything, "user-2").Return(nil).Once()

	rec := expectCleanCascade(t, router)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool            `json:"success"`
		Details DeletionDetails `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.True(t, resp.Details.AuthDeleted)
	require.Len(t, resp.Details.Errors, 1)
	assert.Contains(t, resp.Details.Errors[0], "list posts")
	directory.AssertExpectations(t)
}
