package identity

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
)

// FirebaseDirectory implements Directory on top of the Firebase Admin SDK.
type FirebaseDirectory struct {
	client *auth.Client
}

// NewFirebaseDirectory initializes the Admin SDK using application
// default credentials.
func NewFirebaseDirectory(ctx context.Context) (*FirebaseDirectory, error) {
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init auth client: %w", err)
	}
	return &FirebaseDirectory{client: client}, nil
}

// VerifyIDToken checks the caller's ID token and returns its identity.
func (d *FirebaseDirectory) VerifyIDToken(ctx context.Context, idToken string) (Token, error) {
	decoded, err := d.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Token{}, err
	}
	token := Token{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		token.Email = email
	}
	return token, nil
}

// GetAccount fetches a single directory account.
func (d *FirebaseDirectory) GetAccount(ctx context.Context, uid string) (Account, error) {
	record, err := d.client.GetUser(ctx, uid)
	if err != nil {
		return Account{}, err
	}
	return accountFromRecord(record), nil
}

// SetDisabled flips the account's disabled flag.
func (d *FirebaseDirectory) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := d.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled))
	return err
}

// DeleteAccount removes the account from the directory.
func (d *FirebaseDirectory) DeleteAccount(ctx context.Context, uid string) error {
	return d.client.DeleteUser(ctx, uid)
}

// ListAccounts fetches one page of directory accounts.
func (d *FirebaseDirectory) ListAccounts(ctx context.Context, pageToken string, pageSize int) ([]Account, string, error) {
	pager := iterator.NewPager(d.client.Users(ctx, ""), pageSize, pageToken)
	var page []*auth.ExportedUserRecord
	nextToken, err := pager.NextPage(&page)
	if err != nil {
		return nil, "", err
	}

	accounts := make([]Account, 0, len(page))
	for _, record := range page {
		accounts = append(accounts, accountFromRecord(record.UserRecord))
	}
	return accounts, nextToken, nil
}

func accountFromRecord(record *auth.UserRecord) Account {
	account := Account{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
		Disabled:    record.Disabled,
	}
	if record.UserMetadata != nil {
		if record.UserMetadata.CreationTimestamp > 0 {
			account.CreatedAt = time.UnixMilli(record.UserMetadata.CreationTimestamp)
		}
		if record.UserMetadata.LastLogInTimestamp > 0 {
			account.LastSignIn = time.UnixMilli(record.UserMetadata.LastLogInTimestamp)
		}
	}
	return account
}

var _ Directory = (*FirebaseDirectory)(nil)
