package hooks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"admin-service/internal/mocks"
	"admin-service/internal/models"
)

func TestHandleProvisionsChatUser(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	hook := NewAccountCreatedHook(users)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	hook.now = func() time.Time { return fixed }

	users.On("UpsertChatUser", mock.Anything, models.ChatUser{
		UID:         "u1",
		DisplayName: "Alice",
		PhotoURL:    "https://img/u1.png",
		Email:       "u1@example.com",
		CreatedAt:   fixed,
		LastSeen:    fixed,
	}).Return(nil).Once()

	hook.Handle(context.Background(), []byte(`{"uid":"u1","email":"u1@example.com","display_name":"Alice","photo_url":"https://img/u1.png"}`))

	users.AssertExpectations(t)
}

func TestHandleDefaultsDisplayName(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	hook := NewAccountCreatedHook(users)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	hook.now = func() time.Time { return fixed }

	users.On("UpsertChatUser", mock.Anything, models.ChatUser{
		UID:         "u1",
		DisplayName: models.DefaultDisplayName,
		Email:       "u1@example.com",
		CreatedAt:   fixed,
		LastSeen:    fixed,
	}).Return(nil).Once()

	hook.Handle(context.Background(), []byte(`{"uid":"u1","email":"u1@example.com"}`))

	users.AssertExpectations(t)
}

func TestHandleBadPayload(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	hook := NewAccountCreatedHook(users)

	hook.Handle(context.Background(), []byte(`{not json`))
	hook.Handle(context.Background(), []byte(`{"email":"nouid@example.com"}`))

	users.AssertNotCalled(t, "UpsertChatUser", mock.Anything, mock.Anything)
}
