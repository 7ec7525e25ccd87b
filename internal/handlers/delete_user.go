package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"admin-service/internal/apperrors"
	"admin-service/internal/observability"
)

// DeletionDetails reports what the cascade removed.
type DeletionDetails struct {
	AuthDeleted          bool     `json:"auth_deleted"`
	PostsDeleted         int      `json:"posts_deleted"`
	VocabularyDeleted    int      `json:"vocabulary_deleted"`
	ConversationsDeleted int      `json:"conversations_deleted"`
	FriendsRemoved       int      `json:"friends_removed"`
	Errors               []string `json:"errors"`
}

// DeleteUserCompletely removes every trace of a user: their posts with
// all comments, comments they left on other posts, vocabulary entries,
// the relation graph on both sides, every conversation they participate
// in, the chat user document and finally the directory account. Every
// stage is best-effort: failures land in the report's error list and the
// remaining stages still run.
func (h *AdminHandler) DeleteUserCompletely(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respondError(c, apperrors.InvalidArgument("user_id is required"))
		return
	}
	if userID == c.GetString("adminUID") {
		respondError(c, apperrors.InvalidArgument("admins cannot delete their own account"))
		return
	}

	ctx := c.Request.Context()
	details := DeletionDetails{Errors: []string{}}

	h.deleteAuthoredPosts(ctx, userID, &details)
	h.deleteForeignComments(ctx, userID, &details)
	h.deleteVocabulary(ctx, userID, &details)
	h.deleteSingletons(ctx, userID, &details)
	h.cleanupRelationGraph(ctx, userID, &details)
	h.deleteConversations(ctx, userID, &details)

	if err := h.directory.DeleteAccount(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete directory account: %v", err))
	} else {
		details.AuthDeleted = true
	}

	success := len(details.Errors) == 0
	message := fmt.Sprintf("user %s deleted", userID)
	outcome := "ok"
	if !success {
		message = fmt.Sprintf("user %s deleted with %d errors", userID, len(details.Errors))
		outcome = "partial"
	}

	observability.IncAdminOp("delete_user", outcome)
	observability.IncUsersDeleted()
	h.emitAudit(c, "WARN", message)
	c.JSON(http.StatusOK, gin.H{"success": success, "message": message, "details": details})
}

func (h *AdminHandler) deleteAuthoredPosts(ctx context.Context, userID string, details *DeletionDetails) {
	postIDs, err := h.posts.ListPostIDsByAuthor(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("list posts: %v", err))
		return
	}
	for _, postID := range postIDs {
		if err := h.posts.DeletePostWithComments(ctx, postID); err != nil {
			details.Errors = append(details.Errors, fmt.Sprintf("delete post %s: %v", postID, err))
			continue
		}
		details.PostsDeleted++
	}
}

// deleteForeignComments runs after deleteAuthoredPosts, so any comment
// still carrying the author's id sits on someone else's post.
func (h *AdminHandler) deleteForeignComments(ctx context.Context, userID string, details *DeletionDetails) {
	comments, err := h.posts.ListCommentsByAuthor(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("list comments: %v", err))
		return
	}
	for _, comment := range comments {
		if err := h.posts.DeleteCommentAndDecrementCount(ctx, comment.ID, comment.PostID); err != nil {
			details.Errors = append(details.Errors, fmt.Sprintf("delete comment %s: %v", comment.ID, err))
		}
	}
}

func (h *AdminHandler) deleteVocabulary(ctx context.Context, userID string, details *DeletionDetails) {
	count, err := h.vocab.DeleteEntriesForUser(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete vocabulary: %v", err))
		return
	}
	details.VocabularyDeleted = count
}

func (h *AdminHandler) deleteSingletons(ctx context.Context, userID string, details *DeletionDetails) {
	if err := h.users.DeleteMetadata(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete metadata: %v", err))
	}
	if err := h.users.DeleteProfile(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete profile: %v", err))
	}
}

func (h *AdminHandler) cleanupRelationGraph(ctx context.Context, userID string, details *DeletionDetails) {
	friendIDs, err := h.users.ListFriendIDs(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("list friends: %v", err))
	} else {
		for _, friendID := range friendIDs {
			// reciprocal edge first; its loss alone is tolerated
			if err := h.users.RemoveFriendEdge(ctx, friendID, userID); err != nil {
				log.Printf("delete user %s: remove reciprocal friend edge on %s: %v", userID, friendID, err)
			}
			if err := h.users.RemoveFriendEdge(ctx, userID, friendID); err != nil {
				details.Errors = append(details.Errors, fmt.Sprintf("remove friend %s: %v", friendID, err))
				continue
			}
			details.FriendsRemoved++
		}
	}

	if err := h.users.DeleteFriendRequestsTo(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete friend requests: %v", err))
	}

	recipients, err := h.users.ListSentRequestRecipients(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("list sent requests: %v", err))
	} else {
		for _, recipientID := range recipients {
			if err := h.users.DeletePendingRequest(ctx, recipientID, userID); err != nil {
				log.Printf("delete user %s: remove pending request on %s: %v", userID, recipientID, err)
			}
			if err := h.users.DeleteSentRequest(ctx, userID, recipientID); err != nil {
				details.Errors = append(details.Errors, fmt.Sprintf("delete sent request to %s: %v", recipientID, err))
			}
		}
	}

	if err := h.users.DeleteShareRequests(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete share requests: %v", err))
	}
	if err := h.users.DeleteChatUser(ctx, userID); err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("delete chat user: %v", err))
	}
}

func (h *AdminHandler) deleteConversations(ctx context.Context, userID string, details *DeletionDetails) {
	conversationIDs, err := h.convs.ListConversationIDsForParticipant(ctx, userID)
	if err != nil {
		details.Errors = append(details.Errors, fmt.Sprintf("list conversations: %v", err))
		return
	}
	for _, conversationID := range conversationIDs {
		if err := h.convs.DeleteConversationWithMessages(ctx, conversationID); err != nil {
			details.Errors = append(details.Errors, fmt.Sprintf("delete conversation %s: %v", conversationID, err))
			continue
		}
		details.ConversationsDeleted++
	}
}
