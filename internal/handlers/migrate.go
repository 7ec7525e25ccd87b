package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"admin-service/internal/apperrors"
	"admin-service/internal/identity"
	"admin-service/internal/models"
	"admin-service/internal/observability"
	"admin-service/internal/repositories"
)

const directoryPageSize = 1000

// MigrationDetails aggregates the outcome of a directory backfill run.
type MigrationDetails struct {
	TotalAuthUsers int      `json:"total_auth_users"`
	AlreadyExisted int      `json:"already_existed"`
	NewlyCreated   int      `json:"newly_created"`
	Errors         []string `json:"errors"`
}

// MigrateAuthUsers walks the identity directory page by page and makes
// sure every account has a matching chat user document. Per-account
// failures are recorded and never abort the scan; running it twice with
// no directory changes is a no-op apart from last_seen refreshes.
func (h *AdminHandler) MigrateAuthUsers(c *gin.Context) {
	ctx := c.Request.Context()
	details := MigrationDetails{Errors: []string{}}

	pageToken := ""
	for {
		accounts, nextToken, err := h.directory.ListAccounts(ctx, pageToken, directoryPageSize)
		if err != nil {
			observability.IncAdminOp("migrate", "error")
			respondError(c, apperrors.Wrap(apperrors.CodeInternal, "failed to list directory accounts", err))
			return
		}

		for _, account := range accounts {
			details.TotalAuthUsers++
			if err := h.migrateAccount(ctx, account, &details); err != nil {
				details.Errors = append(details.Errors, fmt.Sprintf("%s (%s): %v", account.UID, account.Email, err))
				observability.IncMigrationAccount("error")
			}
		}

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	observability.IncAdminOp("migrate", "ok")
	h.emitAudit(c, "INFO", fmt.Sprintf("migrated %d directory accounts (%d created, %d existing, %d errors)",
		details.TotalAuthUsers, details.NewlyCreated, details.AlreadyExisted, len(details.Errors)))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "migration complete", "details": details})
}

func (h *AdminHandler) migrateAccount(ctx context.Context, account identity.Account, details *MigrationDetails) error {
	existing, err := h.users.GetChatUser(ctx, account.UID)
	switch {
	case err == nil:
		displayName := firstNonEmpty(account.DisplayName, existing.DisplayName, models.DefaultDisplayName)
		photoURL := firstNonEmpty(account.PhotoURL, existing.PhotoURL)
		email := firstNonEmpty(account.Email, existing.Email)
		if err := h.users.RefreshFromDirectory(ctx, account.UID, displayName, photoURL, email, h.now()); err != nil {
			return err
		}
		details.AlreadyExisted++
		observability.IncMigrationAccount("existing")
		return nil

	case errors.Is(err, repositories.ErrUserNotFound):
		now := h.now()
		createdAt := account.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		lastSeen := account.LastSignIn
		if lastSeen.IsZero() {
			lastSeen = now
		}
		migratedAt := now
		user := models.ChatUser{
			UID:         account.UID,
			DisplayName: firstNonEmpty(account.DisplayName, models.DefaultDisplayName),
			PhotoURL:    account.PhotoURL,
			Email:       account.Email,
			CreatedAt:   createdAt,
			LastSeen:    lastSeen,
			MigratedAt:  &migratedAt,
		}
		if err := h.users.UpsertChatUser(ctx, user); err != nil {
			return err
		}
		details.NewlyCreated++
		observability.IncMigrationAccount("created")
		return nil

	default:
		return err
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
