package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ngyoon95/FSND-Multi-User-Blog/models"
	"github.com/ngyoon95/FSND-Multi-User-Blog/service/postService"
	"github.com/ngyoon95/FSND-Multi-User-Blog/validator"
)

// PostStore - post persistence operations required by the page handlers
type PostStore interface {
	Save(subject, content string) (models.Post, error)
	GetByID(postID int64) (models.Post, error)
	GetRecent(limit int) ([]models.Post, error)
}

// Handler - environment container struct to declare all page handlers as methods
type Handler struct {
	store     PostStore
	templates *template.Template
	logInfo   *log.Logger
	logError  *log.Logger
}

const (
	timeFormat           = "January 2 2006, 15:04:05"
	recentPostsCount int = 10

	// missingPostFields - user submitted a new post without subject or content
	missingPostFields = "Please submit both the title and the post content."
	// invalidUserID - user id does not satisfy the signup format rules
	invalidUserID = "Invalid User ID"
	// invalidPassword - password does not satisfy the signup format rules
	invalidPassword = "Invalid Password"
	// passwordMismatch - password confirmation differs from the password
	passwordMismatch = "Passwords do not Match"
	// invalidEmail - email does not satisfy the signup format rules
	invalidEmail = "Invalid Email"
)

// layoutFiles - all layout files parsed at handler construction. Each file
// defines a template named after the page it renders
var layoutFiles = []string{
	"partials/head.html",
	"partials/header.html",
	"partials/footer.html",
	"index.html",
	"newpost.html",
	"post.html",
	"signup.html",
	"welcome.html",
}

var renderFuncs = template.FuncMap{
	"convertTime":   convertTime,
	"renderContent": renderContent,
}

func convertTime(t time.Time) string {
	return t.Format(timeFormat)
}

// renderContent - escapes post content and converts its line breaks to <br>
// so multi-line posts display correctly in the browser
func renderContent(content string) template.HTML {
	escaped := template.HTMLEscapeString(content)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// NewHandler - creates page handler environment. Layouts are parsed once here
// and shared read-only across all requests
func NewHandler(store PostStore, layoutsPath string, logInfo, logError *log.Logger) (*Handler, error) {
	files := make([]string, 0, len(layoutFiles))
	for _, layoutFile := range layoutFiles {
		files = append(files, layoutsPath+filepath.FromSlash(layoutFile))
	}

	templates, err := template.New("").Funcs(renderFuncs).ParseFiles(files...)
	if err != nil {
		return nil, err
	}

	return &Handler{
		store:     store,
		templates: templates,
		logInfo:   logInfo,
		logError:  logError,
	}, nil
}

// Respond - helper function for responding with only status code
func Respond(w http.ResponseWriter, code int) {
	w.WriteHeader(code)
}

// page - data passed to every layout. Data holds the page-specific part
type page struct {
	Title string
	Data  interface{}
}

// indexPageData - represents index page
type indexPageData struct {
	Posts []models.Post
}

// postPageData - represents a single post ("/{id}") page
type postPageData struct {
	Post models.Post
}

// newPostPageData - represents the new post submission form, either empty or
// re-rendered with the submitted values and an error message
type newPostPageData struct {
	Subject string
	Content string
	Error   string
}

// signupPageData - represents the signup form. Submitted user id and email are
// preserved on re-render; passwords never are
type signupPageData struct {
	UserID         string
	Email          string
	ErrorUserID    string
	ErrorPassword1 string
	ErrorPassword2 string
	ErrorEmail     string
}

// welcomePageData - represents the welcome page
type welcomePageData struct {
	UserID string
}

func (webHandler *Handler) render(w http.ResponseWriter, name string, data page) {
	if err := webHandler.templates.ExecuteTemplate(w, name, data); err != nil {
		webHandler.logError.Printf("Error rendering %s page: %s", name, err)
	}
}

// IndexPageHandler - handler for rendering the index page with recent posts
func (webHandler *Handler) IndexPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts, err := webHandler.store.GetRecent(recentPostsCount)
		if err != nil {
			webHandler.logError.Printf("Error getting recent posts: %s", err)
			Respond(w, http.StatusInternalServerError)
			return
		}

		webHandler.render(w, "index", page{
			Title: "Blog",
			Data:  indexPageData{Posts: posts},
		})
	})
}

// PostPageHandler - handler for rendering a single post permalink page
func (webHandler *Handler) PostPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			Respond(w, http.StatusNotFound)
			return
		}

		post, err := webHandler.store.GetByID(postID)
		if err != nil {
			switch {
			case errors.Is(err, postService.ErrNoSuchPost):
				Respond(w, http.StatusNotFound)
			default:
				webHandler.logError.Printf("Error getting post with ID %d: %s", postID, err)
				Respond(w, http.StatusInternalServerError)
			}
			return
		}

		webHandler.render(w, "post", page{
			Title: post.Subject,
			Data:  postPageData{Post: post},
		})
	})
}

// NewPostPageHandler - handler for rendering an empty post submission form
func (webHandler *Handler) NewPostPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webHandler.render(w, "newpost", page{
			Title: "New Post",
			Data:  newPostPageData{},
		})
	})
}

// NewPostSubmitHandler - handler for the post submission form. Saves the post
// and redirects to its permalink, or re-renders the form with the submitted
// values and an error message when subject or content is missing
func (webHandler *Handler) NewPostSubmitHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := r.FormValue("subject")
		content := r.FormValue("content")

		if subject == "" || content == "" {
			webHandler.render(w, "newpost", page{
				Title: "New Post",
				Data: newPostPageData{
					Subject: subject,
					Content: content,
					Error:   missingPostFields,
				},
			})
			return
		}

		createdPost, err := webHandler.store.Save(subject, content)
		if err != nil {
			webHandler.logError.Printf("Error saving post: %s", err)
			Respond(w, http.StatusInternalServerError)
			return
		}

		webHandler.logInfo.Printf("Post with ID %d successfully created", createdPost.ID)
		http.Redirect(w, r, "/"+strconv.FormatInt(createdPost.ID, 10), http.StatusFound)
	})
}

// SignupPageHandler - handler for rendering an empty signup form
func (webHandler *Handler) SignupPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webHandler.render(w, "signup", page{
			Title: "Signup",
			Data:  signupPageData{},
		})
	})
}

// SignupSubmitHandler - handler for the signup form. Validates every field
// independently and accumulates per-field errors. On success redirects to the
// welcome page carrying the user id; no account is persisted
func (webHandler *Handler) SignupSubmitHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.FormValue("user_id")
		password1 := r.FormValue("password_1")
		password2 := r.FormValue("password_2")
		email := r.FormValue("email")

		haveError := false
		data := signupPageData{
			UserID: userID,
			Email:  email,
		}

		if !validator.IsValidUserID(userID) {
			data.ErrorUserID = invalidUserID
			haveError = true
		}

		// the confirmation is only compared when the password itself is valid
		if !validator.IsValidPassword(password1) {
			data.ErrorPassword1 = invalidPassword
			haveError = true
		} else if password1 != password2 {
			data.ErrorPassword2 = passwordMismatch
			haveError = true
		}

		if !validator.IsValidEmail(email) {
			data.ErrorEmail = invalidEmail
			haveError = true
		}

		if haveError {
			webHandler.render(w, "signup", page{
				Title: "Signup",
				Data:  data,
			})
			return
		}

		http.Redirect(w, r, "/welcome?user_id="+url.QueryEscape(userID), http.StatusFound)
	})
}

// WelcomePageHandler - handler for the welcome page. Greets the user id passed
// in the query if it is well-formed, otherwise responds with an empty body
func (webHandler *Handler) WelcomePageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.FormValue("user_id")
		if !validator.IsValidUserID(userID) {
			Respond(w, http.StatusOK)
			return
		}

		webHandler.render(w, "welcome", page{
			Title: "Welcome",
			Data:  welcomePageData{UserID: userID},
		})
	})
}
