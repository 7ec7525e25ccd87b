package hooks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"admin-service/internal/models"
	"admin-service/internal/observability"
	"admin-service/internal/repositories"
)

// AccountCreatedEvent is the payload the identity platform publishes
// when a new directory account is created.
type AccountCreatedEvent struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// AccountCreatedHook provisions a chat user for every new directory
// account. Failures are logged and swallowed: the platform does not
// retry, so there is no error to signal back.
type AccountCreatedHook struct {
	users repositories.UserRepository
	now   func() time.Time
}

// NewAccountCreatedHook builds the hook.
func NewAccountCreatedHook(users repositories.UserRepository) *AccountCreatedHook {
	return &AccountCreatedHook{users: users, now: time.Now}
}

// Handle consumes one account.created delivery.
func (h *AccountCreatedHook) Handle(ctx context.Context, body []byte) {
	var event AccountCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("account hook: bad payload: %v", err)
		observability.IncHookEvent("bad_payload")
		return
	}
	if event.UID == "" {
		log.Printf("account hook: missing uid in payload")
		observability.IncHookEvent("bad_payload")
		return
	}

	displayName := event.DisplayName
	if displayName == "" {
		displayName = models.DefaultDisplayName
	}

	now := h.now()
	user := models.ChatUser{
		UID:         event.UID,
		DisplayName: displayName,
		PhotoURL:    event.PhotoURL,
		Email:       event.Email,
		CreatedAt:   now,
		LastSeen:    now,
	}
	if err := h.users.UpsertChatUser(ctx, user); err != nil {
		log.Printf("account hook: provision chat user %s: %v", event.UID, err)
		observability.IncHookEvent("error")
		return
	}

	observability.IncHookEvent("created")
	log.Printf("account hook: provisioned chat user uid=%s", event.UID)
}
