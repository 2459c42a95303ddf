package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"et21/internal/logging"
	"et21/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// CredentialStore is the slice of store.Store the login flow needs.
type CredentialStore interface {
	FindCredential(ctx context.Context, email string) (store.Credential, error)
	SetPassword(ctx context.Context, email, password string) error
}

// Authenticator checks submitted credentials against the usuarios table.
type Authenticator struct {
	Store CredentialStore
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("et21-no-such-user"), bcrypt.DefaultCost)
	return h
})

// Verify returns nil when email and password match a stored row,
// ErrInvalidCredentials when they do not, and a wrapped store error
// otherwise. Unknown emails still spend one bcrypt comparison.
func (a *Authenticator) Verify(ctx context.Context, email, password string) error {
	c, err := a.Store.FindCredential(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("find credential: %w", err)
	}
	if !CheckPassword(password, c.Password) {
		return ErrInvalidCredentials
	}
	if !IsHashed(c.Password) {
		a.upgrade(ctx, email, password)
	}
	return nil
}

// upgrade replaces a legacy plaintext password with its bcrypt hash. A
// failure here does not fail the login.
func (a *Authenticator) upgrade(ctx context.Context, email, password string) {
	log := logging.From(ctx)
	hash, err := HashPassword(password)
	if err != nil {
		log.Warn("login.upgrade_hash", "err", err)
		return
	}
	if err := a.Store.SetPassword(ctx, email, hash); err != nil {
		log.Warn("login.upgrade_store", "err", err)
		return
	}
	log.Info("login.password_upgraded")
}
