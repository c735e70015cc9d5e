package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRelation(t *testing.T) {
	server := setupTestServer(t)
	owner, _ := createTestUser(t, server, "owner@example.com", false)
	_, token := createTestUser(t, server, "reader@example.com", false)
	book := createTestBook(t, server, owner, "Dune", "Frank Herbert", "25.00")

	t.Run("anonymous is rejected", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/api/v1/relations/"+book.ID+"/", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody[map[string]string](t, w)
		assert.Equal(t, "Authentication credentials were not provided.", body["detail"])
	})

	t.Run("first access returns default state", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/api/v1/relations/"+book.ID+"/", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.Equal(t, book.ID, body["book"])
		assert.Equal(t, false, body["like"])
		assert.Equal(t, false, body["in_bookmarks"])
		assert.Nil(t, body["rate"])
	})

	t.Run("missing book", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/api/v1/relations/book_missing/", token, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody[map[string]string](t, w)
		assert.Equal(t, "Not found.", body["detail"])
	})
}

func TestPatchRelation(t *testing.T) {
	server := setupTestServer(t)
	owner, _ := createTestUser(t, server, "owner@example.com", false)
	_, token := createTestUser(t, server, "reader@example.com", false)
	book := createTestBook(t, server, owner, "Dune", "Frank Herbert", "25.00")
	path := "/api/v1/relations/" + book.ID + "/"

	t.Run("like upserts the relation", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"like": true})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.Equal(t, true, body["like"])
		assert.Equal(t, false, body["in_bookmarks"])
	})

	t.Run("rate persists alongside like", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"rate": 4})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.Equal(t, true, body["like"])
		assert.Equal(t, float64(4), body["rate"])
	})

	t.Run("absent rate keeps the rating", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"in_bookmarks": true})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.Equal(t, float64(4), body["rate"])
		assert.Equal(t, true, body["in_bookmarks"])
	})

	t.Run("null rate clears the rating", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"rate": nil})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]any](t, w)
		assert.Nil(t, body["rate"])
	})

	t.Run("out-of-range rate is rejected", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"rate": 6})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[map[string][]string](t, w)
		assert.Equal(t, []string{`"6" is not a valid choice.`}, body["rate"])
	})

	t.Run("zero rate is rejected", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, token, map[string]any{"rate": 0})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[map[string][]string](t, w)
		assert.Equal(t, []string{`"0" is not a valid choice.`}, body["rate"])
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, path, "", map[string]any{"like": true})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPatch, "/api/v1/relations/book_missing/", token, map[string]any{"like": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPatchRelation_IsolatedPerUser(t *testing.T) {
	server := setupTestServer(t)
	owner, _ := createTestUser(t, server, "owner@example.com", false)
	_, aliceToken := createTestUser(t, server, "alice@example.com", false)
	_, bobToken := createTestUser(t, server, "bob@example.com", false)
	book := createTestBook(t, server, owner, "Dune", "Frank Herbert", "25.00")
	path := "/api/v1/relations/" + book.ID + "/"

	w := doJSON(t, server, http.MethodPatch, path, aliceToken, map[string]any{"like": true, "rate": 5})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, path, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, false, body["like"])
	assert.Nil(t, body["rate"])
}
