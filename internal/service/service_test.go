package service

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// testEnv wires real services over a temp SQLite store.
type testEnv struct {
	store     *sqlite.Store
	books     *BookService
	relations *RelationService
	auth      *AuthService
	sessions  *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	v := validation.New()
	sessions := NewSessionService(s, tokens, logger)

	return &testEnv{
		store:     s,
		books:     NewBookService(s, v, logger),
		relations: NewRelationService(s, v, logger),
		auth:      NewAuthService(s, tokens, sessions, v, logger),
		sessions:  sessions,
	}
}

func (e *testEnv) createUser(t *testing.T, email string, staff bool) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        email,
		PasswordHash: "$argon2id$fake",
		DisplayName:  email,
		IsStaff:      staff,
	}
	user.InitTimestamps()
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createBook(t *testing.T, owner *domain.User, title, author, price string) *domain.Book {
	t.Helper()
	book, err := e.books.Create(context.Background(), owner, BookRequest{
		Title:      title,
		Price:      priceOf(t, price),
		AuthorName: author,
	})
	require.NoError(t, err)
	return book
}

// priceOf parses a decimal string into a request price.
func priceOf(t *testing.T, s string) *domain.Price {
	t.Helper()
	p, err := domain.ParsePrice(s)
	require.NoError(t, err)
	return &p
}
