package store

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, query BookListQuery) ([]*domain.Book, error)
	CountBooks(ctx context.Context) (int, error)

	// User-book relations
	GetOrCreateRelation(ctx context.Context, userID, bookID string) (*domain.UserBookRelation, error)
	GetRelation(ctx context.Context, userID, bookID string) (*domain.UserBookRelation, error)
	UpdateRelation(ctx context.Context, relation *domain.UserBookRelation) error
}
