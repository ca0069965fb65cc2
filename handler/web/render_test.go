package web

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/ngyoon95/FSND-Multi-User-Blog/models"
	"github.com/ngyoon95/FSND-Multi-User-Blog/service/postService"
	"gotest.tools/assert"
)

var testLayoutsPath = filepath.FromSlash("../../front/layouts/")

// fakePostStore - in-memory PostStore for driving handlers in tests
type fakePostStore struct {
	posts  []models.Post
	nextID int64
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1}
}

func (store *fakePostStore) Save(subject, content string) (models.Post, error) {
	post := models.Post{
		ID:       store.nextID,
		BlogKey:  "default",
		Subject:  subject,
		Content:  content,
		Created:  time.Now(),
		Modified: time.Now(),
	}
	store.nextID++
	store.posts = append([]models.Post{post}, store.posts...)
	return post, nil
}

func (store *fakePostStore) GetByID(postID int64) (models.Post, error) {
	for _, post := range store.posts {
		if post.ID == postID {
			return post, nil
		}
	}
	return models.Post{}, postService.ErrNoSuchPost
}

func (store *fakePostStore) GetRecent(limit int) ([]models.Post, error) {
	if len(store.posts) > limit {
		return store.posts[:limit], nil
	}
	return store.posts, nil
}

func newTestHandler(t *testing.T, store PostStore) *Handler {
	t.Helper()

	discard := log.New(io.Discard, "", 0)
	webHandler, err := NewHandler(store, testLayoutsPath, discard, discard)
	assert.NilError(t, err)

	return webHandler
}

func postForm(handler http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestIndexPageListsRecentPosts(t *testing.T) {
	store := newFakePostStore()
	_, _ = store.Save("First Post", "first content")
	_, _ = store.Save("Second Post", "second content")
	webHandler := newTestHandler(t, store)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	webHandler.IndexPageHandler().ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Assert(t, strings.Contains(body, "First Post"))
	assert.Assert(t, strings.Contains(body, "Second Post"))
	// most recent post comes first
	assert.Assert(t, strings.Index(body, "Second Post") < strings.Index(body, "First Post"))
}

func TestIndexPageEmptyBlog(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	webHandler.IndexPageHandler().ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusOK)
}

func TestNewPostSubmitCreatesPostAndRedirects(t *testing.T) {
	store := newFakePostStore()
	webHandler := newTestHandler(t, store)

	w := postForm(webHandler.NewPostSubmitHandler(), "/newpost", url.Values{
		"subject": {"Hello"},
		"content": {"World"},
	})

	assert.Equal(t, w.Code, http.StatusFound)
	assert.Equal(t, w.Header().Get("Location"), "/1")
	assert.Equal(t, len(store.posts), 1)
	assert.Equal(t, store.posts[0].Subject, "Hello")
	assert.Equal(t, store.posts[0].Content, "World")
}

func TestNewPostSubmitMissingContent(t *testing.T) {
	store := newFakePostStore()
	webHandler := newTestHandler(t, store)

	w := postForm(webHandler.NewPostSubmitHandler(), "/newpost", url.Values{
		"subject": {"Only a subject"},
	})

	assert.Equal(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Assert(t, strings.Contains(body, missingPostFields))
	// submitted subject is preserved on re-render
	assert.Assert(t, strings.Contains(body, "Only a subject"))
	// no post was created
	assert.Equal(t, len(store.posts), 0)
}

func TestPostPage(t *testing.T) {
	store := newFakePostStore()
	createdPost, _ := store.Save("Hello", "Line one\nLine two")
	webHandler := newTestHandler(t, store)

	r := httptest.NewRequest("GET", "/1", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	webHandler.PostPageHandler().ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Assert(t, strings.Contains(body, createdPost.Subject))
	// post content line breaks are converted to <br> markup
	assert.Assert(t, strings.Contains(body, "Line one<br>Line two"))
}

func TestPostPageNotFound(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	r := httptest.NewRequest("GET", "/42", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "42"})
	w := httptest.NewRecorder()
	webHandler.PostPageHandler().ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusNotFound)
}

func TestSignupSubmitValid(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	w := postForm(webHandler.SignupSubmitHandler(), "/signup", url.Values{
		"user_id":    {"harry"},
		"password_1": {"secret"},
		"password_2": {"secret"},
		"email":      {"staleyh@gmail.com"},
	})

	assert.Equal(t, w.Code, http.StatusFound)
	assert.Equal(t, w.Header().Get("Location"), "/welcome?user_id=harry")
}

func TestSignupSubmitPasswordMismatch(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	w := postForm(webHandler.SignupSubmitHandler(), "/signup", url.Values{
		"user_id":    {"harry"},
		"password_1": {"abc"},
		"password_2": {"xyz"},
	})

	assert.Equal(t, w.Code, http.StatusOK)
	body := w.Body.String()
	// both passwords are individually valid, so this is a mismatch, not a format error
	assert.Assert(t, strings.Contains(body, passwordMismatch))
	assert.Assert(t, !strings.Contains(body, invalidPassword))
	// submitted user id is preserved on re-render
	assert.Assert(t, strings.Contains(body, "harry"))
}

func TestSignupSubmitInvalidFields(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	w := postForm(webHandler.SignupSubmitHandler(), "/signup", url.Values{
		"user_id":    {"ab"},
		"password_1": {"x"},
		"password_2": {"x"},
		"email":      {"noatsign"},
	})

	assert.Equal(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Assert(t, strings.Contains(body, invalidUserID))
	assert.Assert(t, strings.Contains(body, invalidPassword))
	assert.Assert(t, strings.Contains(body, invalidEmail))
	// confirmation is not compared when the password itself is invalid
	assert.Assert(t, !strings.Contains(body, passwordMismatch))
}

func TestWelcomePage(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	r := httptest.NewRequest("GET", "/welcome?user_id=abc", nil)
	w := httptest.NewRecorder()
	webHandler.WelcomePageHandler().ServeHTTP(w, r)

	assert.Equal(t, w.Code, http.StatusOK)
	assert.Assert(t, strings.Contains(w.Body.String(), "abc"))
}

func TestWelcomePageInvalidUserID(t *testing.T) {
	webHandler := newTestHandler(t, newFakePostStore())

	r := httptest.NewRequest("GET", "/welcome?user_id=ab", nil)
	w := httptest.NewRecorder()
	webHandler.WelcomePageHandler().ServeHTTP(w, r)

	// the page renders nothing for a malformed user id
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, w.Body.Len(), 0)
}
