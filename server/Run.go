package server

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lib/pq" // import postgres driver
	"github.com/ngyoon95/FSND-Multi-User-Blog/handler/web"
	"github.com/ngyoon95/FSND-Multi-User-Blog/service/postService"
	"github.com/spf13/viper"
)

var (
	logInfo  = log.New(os.Stdout, "INFO: ", log.Ltime)
	logError = log.New(os.Stderr, "ERROR: ", log.Ltime)
)

// keys to access env variables
const (
	dbUserEnvKey     string = "db_user"
	dbPasswordEnvKey string = "db_password"
	dbNameEnvKey     string = "db_name"
	dbHostEnvKey     string = "db_host"
	dbPortEnvKey     string = "db_port"
	blogKeyEnvKey    string = "blog_key"
	layoutsEnvKey    string = "layouts_path"
	serverPortEnvKey string = "server_port"
)

const defaultBlogKey = "default"

// RunServer - reads configuration from the environment, opens the database
// and serves the blog until the process is stopped
func RunServer() {
	// bind env variables. Access them by the same key
	_ = viper.BindEnv(dbUserEnvKey, "DB_USER")
	_ = viper.BindEnv(dbPasswordEnvKey, "DB_PASSWORD")
	_ = viper.BindEnv(dbNameEnvKey, "DB_NAME")
	_ = viper.BindEnv(dbHostEnvKey, "DB_HOST")
	_ = viper.BindEnv(dbPortEnvKey, "DB_PORT")
	_ = viper.BindEnv(blogKeyEnvKey, "BLOG_KEY")
	_ = viper.BindEnv(layoutsEnvKey, "LAYOUTS_PATH")
	_ = viper.BindEnv(serverPortEnvKey, "SERVER_PORT")
	viper.SetDefault(blogKeyEnvKey, defaultBlogKey)
	viper.SetDefault(layoutsEnvKey, "front/layouts/")
	viper.SetDefault(serverPortEnvKey, "8080")

	dbUser := viper.GetString(dbUserEnvKey)
	dbPassword := viper.GetString(dbPasswordEnvKey)
	dbName := viper.GetString(dbNameEnvKey)
	dbHost := viper.GetString(dbHostEnvKey)
	dbPort := viper.GetString(dbPortEnvKey)
	blogKey := viper.GetString(blogKeyEnvKey)
	layoutsPath := filepath.FromSlash(viper.GetString(layoutsEnvKey))
	serverPort := viper.GetString(serverPortEnvKey)

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)
	logInfo.Printf("Opening database on host=%s, port=%s, user=%s, db name=%s...", dbHost, dbPort, dbUser, dbName)
	db, err := sql.Open("postgres", connString)
	if err != nil {
		logError.Fatalf("Error opening database: %s", err)
	}
	defer func() {
		err := db.Close()
		if err != nil {
			logError.Printf("Error closing database: %s", err)
		}
	}()
	// validate data source
	if err = db.Ping(); err != nil {
		logError.Fatalf("Invalid data source: %s", err)
	}
	logInfo.Print("Database successfully opened")

	postStore := postService.New(db, blogKey)

	webHandler, err := web.NewHandler(postStore,
		layoutsPath,
		log.New(os.Stdout, "[web] INFO: ", log.Ltime),
		log.New(os.Stderr, "[web] ERROR: ", log.Ltime))
	if err != nil {
		logError.Fatalf("Error parsing layouts: %s", err)
	}

	router := NewRouter(webHandler)
	router.Use(RequestLoggingMiddleware(logInfo))

	address := "localhost:" + serverPort
	logInfo.Printf("listening on address %s", address)
	logError.Fatal(http.ListenAndServe(address, router))
}
