package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func TestBookService_Create_AssignsOwner(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "owner@example.com", false)

	book, err := env.books.Create(context.Background(), user, BookRequest{
		Title:      "test book 1",
		Price:      priceOf(t, "25.00"),
		AuthorName: "author1",
	})
	require.NoError(t, err)

	require.NotNil(t, book.OwnerID)
	assert.Equal(t, user.ID, *book.OwnerID)
	assert.Equal(t, "25.00", book.Price.String())
}

func TestBookService_Create_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.books.Create(context.Background(), nil, BookRequest{
		Title:      "test book",
		Price:      priceOf(t, "10.00"),
		AuthorName: "author1",
	})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}

func TestBookService_Create_ValidatesFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "owner@example.com", false)

	tests := []struct {
		name      string
		req       BookRequest
		wantField string
	}{
		{"missing title", BookRequest{Price: priceOf(t, "10.00"), AuthorName: "a"}, "title"},
		{"missing price", BookRequest{Title: "t", AuthorName: "a"}, "price"},
		{"missing author", BookRequest{Title: "t", Price: priceOf(t, "10.00")}, "author_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.books.Create(context.Background(), user, tt.req)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			fields, ok := appErr.Details.(map[string][]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestBookService_Update_OwnerAllowed(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	book := env.createBook(t, owner, "old", "author1", "10.00")

	updated, err := env.books.Update(context.Background(), owner, book.ID, BookRequest{
		Title:      "new",
		Price:      priceOf(t, "575.00"),
		AuthorName: "author1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "575.00", updated.Price.String())
}

func TestBookService_Update_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	intruder := env.createUser(t, "intruder@example.com", false)
	book := env.createBook(t, owner, "test book", "author1", "10.00")

	_, err := env.books.Update(context.Background(), intruder, book.ID, BookRequest{
		Title:      "hijacked",
		Price:      priceOf(t, "1.00"),
		AuthorName: "author1",
	})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	// The book is untouched.
	got, err := env.books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "test book", got.Title)
}

func TestBookService_Update_StaffAllowed(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	staff := env.createUser(t, "staff@example.com", true)
	book := env.createBook(t, owner, "test book", "author1", "10.00")

	updated, err := env.books.Update(context.Background(), staff, book.ID, BookRequest{
		Title:      "moderated",
		Price:      priceOf(t, "10.00"),
		AuthorName: "author1",
	})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Title)
	// Ownership does not change on staff edit.
	require.NotNil(t, updated.OwnerID)
	assert.Equal(t, owner.ID, *updated.OwnerID)
}

func TestBookService_Patch_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	book := env.createBook(t, owner, "test book", "author1", "10.00")

	patched, err := env.books.Patch(context.Background(), owner, book.ID, BookPatch{Price: priceOf(t, "20.50")})
	require.NoError(t, err)

	assert.Equal(t, "20.50", patched.Price.String())
	assert.Equal(t, "test book", patched.Title)
	assert.Equal(t, "author1", patched.AuthorName)
}

func TestBookService_Patch_BlankTitleRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	book := env.createBook(t, owner, "test book", "author1", "10.00")

	blank := ""
	_, err := env.books.Patch(context.Background(), owner, book.ID, BookPatch{Title: &blank})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestBookService_Delete_Permissions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	other := env.createUser(t, "other@example.com", false)
	staff := env.createUser(t, "staff@example.com", true)
	ctx := context.Background()

	book := env.createBook(t, owner, "test book", "author1", "10.00")

	err := env.books.Delete(ctx, other, book.ID)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, env.books.Delete(ctx, owner, book.ID))

	// Staff can delete someone else's book.
	book2 := env.createBook(t, owner, "second book", "author1", "10.00")
	require.NoError(t, env.books.Delete(ctx, staff, book2.ID))
}

func TestBookService_Delete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createUser(t, "staff@example.com", true)

	err := env.books.Delete(context.Background(), staff, "book-missing")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestBookService_List_Filters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	ctx := context.Background()

	env.createBook(t, owner, "test book 1", "author1", "25.00")
	env.createBook(t, owner, "test book author1", "author2", "55.00")
	env.createBook(t, owner, "another", "author3", "25.00")

	books, err := env.books.List(ctx, ListParams{Price: "25.00"})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = env.books.List(ctx, ListParams{AuthorName: "author1"})
	require.NoError(t, err)
	assert.Len(t, books, 1)

	books, err = env.books.List(ctx, ListParams{Search: "author1"})
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestBookService_List_Ordering(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", false)
	ctx := context.Background()

	env.createBook(t, owner, "b", "author2", "55.00")
	env.createBook(t, owner, "a", "author1", "25.00")

	books, err := env.books.List(ctx, ListParams{Ordering: "-price"})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "55.00", books[0].Price.String())

	// Unknown ordering fields are ignored rather than rejected.
	books, err = env.books.List(ctx, ListParams{Ordering: "owner"})
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestBookService_List_BadPriceFilter(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.books.List(context.Background(), ListParams{Price: "cheap"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
