package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"admin-service/internal/apperrors"
	"admin-service/internal/identity"
	"admin-service/internal/models"
	"admin-service/internal/observability"
	"admin-service/internal/repositories"
	"admin-service/internal/telemetry"
)

const defaultBanReason = "No reason provided"

// AdminHandler serves admin maintenance operations.
type AdminHandler struct {
	users     repositories.UserRepository
	posts     repositories.PostRepository
	vocab     repositories.VocabularyRepository
	convs     repositories.ConversationRepository
	bans      repositories.BanRepository
	directory identity.Directory
	audit     *telemetry.AuditEmitter
	now       func() time.Time
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	vocab repositories.VocabularyRepository,
	convs repositories.ConversationRepository,
	bans repositories.BanRepository,
	directory identity.Directory,
	audit *telemetry.AuditEmitter,
) *AdminHandler {
	return &AdminHandler{
		users:     users,
		posts:     posts,
		vocab:     vocab,
		convs:     convs,
		bans:      bans,
		directory: directory,
		audit:     audit,
		now:       time.Now,
	}
}

// BanUser disables the directory account and records the ban. The two
// writes are not atomic; a crash in between leaves the disabled flag and
// the ban record out of sync until the next ban or unban of the same uid.
func (h *AdminHandler) BanUser(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respondError(c, apperrors.InvalidArgument("user_id is required"))
		return
	}
	if userID == c.GetString("adminUID") {
		respondError(c, apperrors.InvalidArgument("admins cannot ban themselves"))
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	reason := req.Reason
	if reason == "" {
		reason = defaultBanReason
	}

	ctx := c.Request.Context()
	if err := h.directory.SetDisabled(ctx, userID, true); err != nil {
		observability.IncAdminOp("ban", "error")
		respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to disable account", err))
		return
	}
	ban := models.BannedUser{
		UID:      userID,
		BannedAt: h.now(),
		BannedBy: c.GetString("adminUID"),
		Reason:   reason,
	}
	if err := h.bans.Upsert(ctx, ban); err != nil {
		observability.IncAdminOp("ban", "error")
		respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to record ban", err))
		return
	}

	observability.IncAdminOp("ban", "ok")
	h.emitAudit(c, "WARN", fmt.Sprintf("banned user %s: %s", userID, reason))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("user %s banned", userID)})
}

// UnbanUser re-enables the directory account and drops the ban record.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respondError(c, apperrors.InvalidArgument("user_id is required"))
		return
	}

	ctx := c.Request.Context()
	if err := h.directory.SetDisabled(ctx, userID, false); err != nil {
		observability.IncAdminOp("unban", "error")
		respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to enable account", err))
		return
	}
	if err := h.bans.Delete(ctx, userID); err != nil {
		observability.IncAdminOp("unban", "error")
		respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to remove ban record", err))
		return
	}

	observability.IncAdminOp("unban", "ok")
	h.emitAudit(c, "INFO", fmt.Sprintf("unbanned user %s", userID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("user %s unbanned", userID)})
}

// GetAdminStats counts the three top-level collections concurrently.
func (h *AdminHandler) GetAdminStats(c *gin.Context) {
	var totalUsers, totalPosts, totalConversations int

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		totalUsers, err = h.users.CountChatUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalPosts, err = h.posts.CountPosts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalConversations, err = h.convs.CountConversations(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		observability.IncAdminOp("stats", "error")
		respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to count collections", err))
		return
	}

	observability.IncAdminOp("stats", "ok")
	c.JSON(http.StatusOK, gin.H{
		"total_users":         totalUsers,
		"total_posts":         totalPosts,
		"total_conversations": totalConversations,
	})
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = &apperrors.AppError{Code: apperrors.CodeInternal, Message: "internal error", Cause: err}
	}
	c.JSON(apperrors.HTTPStatus(appErr.Code), gin.H{"kind": string(appErr.Code), "error": appErr.Message})
}
