package postService

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ngyoon95/FSND-Multi-User-Blog/models"
)

// postsAllFields - all entity fields in select/returning order
const postsAllFields = "id, blog_key, subject, content, created, modified"

var (
	// ErrNoSuchPost - requested post does not exist in the blog
	ErrNoSuchPost = errors.New("no such post")
	// ErrStoreUnavailable - underlying datastore call failed
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store - provides access to posts of a single blog. The blog key names the
// partition all posts created and read through this store belong to
type Store struct {
	db      *sql.DB
	blogKey string
}

func New(db *sql.DB, blogKey string) *Store {
	return &Store{
		db:      db,
		blogKey: blogKey,
	}
}

// Save - saves a new post
// returns the created post with ID and timestamps set by the database
func (store *Store) Save(subject, content string) (models.Post, error) {
	var createdPost models.Post

	if err := store.db.QueryRow("insert into posts (blog_key, subject, content) values ($1, $2, $3) "+
		"RETURNING "+postsAllFields,
		store.blogKey, subject, content).
		Scan(&createdPost.ID, &createdPost.BlogKey, &createdPost.Subject, &createdPost.Content,
			&createdPost.Created, &createdPost.Modified); err != nil {
		return createdPost, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return createdPost, nil
}

// GetByID - retrieves the post with the given ID
// returns ErrNoSuchPost if the post does not exist in this blog
func (store *Store) GetByID(postID int64) (models.Post, error) {
	var post models.Post

	if err := store.db.QueryRow("select "+postsAllFields+" from posts where blog_key = $1 and id = $2",
		store.blogKey, postID).
		Scan(&post.ID, &post.BlogKey, &post.Subject, &post.Content, &post.Created, &post.Modified); err != nil {
		if err == sql.ErrNoRows {
			return post, ErrNoSuchPost
		}

		return post, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return post, nil
}

// GetRecent - retrieves up to limit posts, most recent first
func (store *Store) GetRecent(limit int) ([]models.Post, error) {
	var posts []models.Post

	rows, err := store.db.Query("select "+postsAllFields+" from posts where blog_key = $1 "+
		"order by created DESC, id DESC limit $2",
		store.blogKey, limit)
	if err != nil {
		return posts, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var currentPost models.Post
		if err = rows.Scan(&currentPost.ID, &currentPost.BlogKey, &currentPost.Subject, &currentPost.Content,
			&currentPost.Created, &currentPost.Modified); err != nil {
			return posts, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		posts = append(posts, currentPost)
	}
	if err = rows.Err(); err != nil {
		return posts, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return posts, nil
}
