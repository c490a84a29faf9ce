package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// addBook creates a book over the API and returns its decoded form.
func (ts *testServer) addBook(token, isnb, title string) domain.Book {
	ts.t.Helper()

	rec := ts.request(http.MethodPost, "/api/v1/books/", token, map[string]any{
		"isnb":        isnb,
		"description": map[string]any{"title": title},
		"rating":      50,
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope testEnvelope[domain.Book]
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAddAndListBooks(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")

	book := ts.addBook(token, "isnb-1", "Dune")
	assert.NotEmpty(t, book.ID)

	rec := ts.request(http.MethodGet, "/api/v1/books/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope testEnvelope[[]domain.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Dune", envelope.Data[0].Description.Title)
}

func TestListBooksEmpty(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")

	rec := ts.request(http.MethodGet, "/api/v1/books/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope testEnvelope[[]domain.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestAddBookDuplicateISNB(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")
	ts.addBook(token, "isnb-1", "Dune")

	rec := ts.request(http.MethodPost, "/api/v1/books/", token, map[string]any{
		"isnb":        "isnb-1",
		"description": map[string]any{"title": "Dune again"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddBookValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")

	// Missing title.
	rec := ts.request(http.MethodPost, "/api/v1/books/", token, map[string]any{
		"isnb": "isnb-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookRatingOnly(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")
	book := ts.addBook(token, "isnb-1", "Dune")

	rec := ts.request(http.MethodPatch, "/api/v1/books/"+book.ID, token, map[string]any{
		"rating": 95,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope testEnvelope[domain.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 95, envelope.Data.Rating)
	assert.Equal(t, "Dune", envelope.Data.Description.Title)
}

func TestUpdateBookDescription(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")
	book := ts.addBook(token, "isnb-1", "Dune")

	rec := ts.request(http.MethodPatch, "/api/v1/books/"+book.ID+"/description", token, map[string]any{
		"description": "A desert planet epic.",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope testEnvelope[domain.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "A desert planet epic.", envelope.Data.Description.Description)
	assert.Equal(t, "Dune", envelope.Data.Description.Title)
}

func TestDeleteBook(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")
	book := ts.addBook(token, "isnb-1", "Dune")

	rec := ts.request(http.MethodDelete, "/api/v1/books/"+book.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/books/"+book.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBookNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup("alice", "alice@example.com")

	rec := ts.request(http.MethodGet, "/api/v1/books/bk-missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBooksAreScopedPerUser(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signup("alice", "alice@example.com")
	bobToken := ts.signup("bob", "bob@example.com")

	book := ts.addBook(aliceToken, "isnb-1", "Dune")

	// Bob can't see Alice's book.
	rec := ts.request(http.MethodGet, "/api/v1/books/"+book.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/books/", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope testEnvelope[[]domain.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}
