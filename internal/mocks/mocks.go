package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"admin-service/internal/identity"
	"admin-service/internal/models"
	"admin-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetChatUser(ctx context.Context, uid string) (models.ChatUser, error) {
	args := m.Called(ctx, uid)
	var user models.ChatUser
	if val := args.Get(0); val != nil {
		user = val.(models.ChatUser)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) UpsertChatUser(ctx context.Context, user models.ChatUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) RefreshFromDirectory(ctx context.Context, uid, displayName, photoURL, email string, lastSeen time.Time) error {
	args := m.Called(ctx, uid, displayName, photoURL, email, lastSeen)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteChatUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepositoryMock) ListFriendIDs(ctx context.Context, uid string) ([]string, error) {
	args := m.Called(ctx, uid)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *UserRepositoryMock) RemoveFriendEdge(ctx context.Context, userID, friendID string) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteFriendRequestsTo(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepositoryMock) ListSentRequestRecipients(ctx context.Context, uid string) ([]string, error) {
	args := m.Called(ctx, uid)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *UserRepositoryMock) DeletePendingRequest(ctx context.Context, userID, fromUserID string) error {
	args := m.Called(ctx, userID, fromUserID)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteSentRequest(ctx context.Context, userID, toUserID string) error {
	args := m.Called(ctx, userID, toUserID)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteShareRequests(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteMetadata(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteProfile(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepositoryMock) CountChatUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) ListPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	args := m.Called(ctx, authorID)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *PostRepositoryMock) DeletePostWithComments(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *PostRepositoryMock) ListCommentsByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	args := m.Called(ctx, authorID)
	var comments []models.Comment
	if val := args.Get(0); val != nil {
		comments = val.([]models.Comment)
	}
	return comments, args.Error(1)
}

func (m *PostRepositoryMock) DeleteCommentAndDecrementCount(ctx context.Context, commentID, postID string) error {
	args := m.Called(ctx, commentID, postID)
	return args.Error(0)
}

func (m *PostRepositoryMock) CountPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type VocabularyRepositoryMock struct {
	mock.Mock
}

func (m *VocabularyRepositoryMock) DeleteEntriesForUser(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) ListConversationIDsForParticipant(ctx context.Context, uid string) ([]string, error) {
	args := m.Called(ctx, uid)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *ConversationRepositoryMock) DeleteConversationWithMessages(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) CountConversations(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type BanRepositoryMock struct {
	mock.Mock
}

func (m *BanRepositoryMock) Upsert(ctx context.Context, ban models.BannedUser) error {
	args := m.Called(ctx, ban)
	return args.Error(0)
}

func (m *BanRepositoryMock) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *BanRepositoryMock) Get(ctx context.Context, uid string) (models.BannedUser, error) {
	args := m.Called(ctx, uid)
	var ban models.BannedUser
	if val := args.Get(0); val != nil {
		ban = val.(models.BannedUser)
	}
	return ban, args.Error(1)
}

type DirectoryMock struct {
	mock.Mock
}

func (m *DirectoryMock) VerifyIDToken(ctx context.Context, idToken string) (identity.Token, error) {
	args := m.Called(ctx, idToken)
	var token identity.Token
	if val := args.Get(0); val != nil {
		token = val.(identity.Token)
	}
	return token, args.Error(1)
}

func (m *DirectoryMock) GetAccount(ctx context.Context, uid string) (identity.Account, error) {
	args := m.Called(ctx, uid)
	var account identity.Account
	if val := args.Get(0); val != nil {
		account = val.(identity.Account)
	}
	return account, args.Error(1)
}

func (m *DirectoryMock) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	args := m.Called(ctx, uid, disabled)
	return args.Error(0)
}

func (m *DirectoryMock) DeleteAccount(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *DirectoryMock) ListAccounts(ctx context.Context, pageToken string, pageSize int) ([]identity.Account, string, error) {
	args := m.Called(ctx, pageToken, pageSize)
	var accounts []identity.Account
	if val := args.Get(0); val != nil {
		accounts = val.([]identity.Account)
	}
	return accounts, args.String(1), args.Error(2)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.PostRepository = (*PostRepositoryMock)(nil)
var _ repositories.VocabularyRepository = (*VocabularyRepositoryMock)(nil)
var _ repositories.ConversationRepository = (*ConversationRepositoryMock)(nil)
var _ repositories.BanRepository = (*BanRepositoryMock)(nil)
var _ identity.Directory = (*DirectoryMock)(nil)
