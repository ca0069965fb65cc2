package server

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/ngyoon95/FSND-Multi-User-Blog/handler/web"
)

var frontendStaticPath = filepath.FromSlash("front/static/")

// NewRouter - builds the route table. Kept separate from RunServer so the
// dispatch can be tested without a database
func NewRouter(webHandler *web.Handler) *mux.Router {
	router := mux.NewRouter()

	router.Handle("/", webHandler.IndexPageHandler()).Methods("GET")
	router.Handle("/newpost", webHandler.NewPostPageHandler()).Methods("GET")
	router.Handle("/newpost", webHandler.NewPostSubmitHandler()).Methods("POST")
	router.Handle("/signup", webHandler.SignupPageHandler()).Methods("GET")
	router.Handle("/signup", webHandler.SignupSubmitHandler()).Methods("POST")
	router.Handle("/welcome", webHandler.WelcomePageHandler()).Methods("GET")
	router.Handle("/{id:[0-9]+}", webHandler.PostPageHandler()).Methods("GET")
	router.HandleFunc("/hc", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}).Methods("GET")

	router.PathPrefix("/static/").
		Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(frontendStaticPath))))

	return router
}
