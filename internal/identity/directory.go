package identity

import (
	"context"
	"time"
)

// Account is a user record in the identity directory.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Disabled    bool
	// CreatedAt and LastSignIn are zero when the directory has no
	// metadata for the account.
	CreatedAt  time.Time
	LastSignIn time.Time
}

// Token is a verified caller identity.
type Token struct {
	UID   string
	Email string
}

// Directory abstracts the managed identity service.
type Directory interface {
	VerifyIDToken(ctx context.Context, idToken string) (Token, error)
	GetAccount(ctx context.Context, uid string) (Account, error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	DeleteAccount(ctx context.Context, uid string) error
	// ListAccounts returns one page of accounts plus the continuation
	// token for the next page; an empty token means the listing is done.
	ListAccounts(ctx context.Context, pageToken string, pageSize int) ([]Account, string, error)
}
