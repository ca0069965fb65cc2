package models

import "time"

// Post - represents blog post
// @ID - ID assigned by database on creation, unique within a blog
// @BlogKey - key of the blog this post belongs to
// @Subject - post title
// @Content - post body. May contain line breaks that are converted to <br> markup at render time
// @Created - creation time, set once
// @Modified - last write time. Posts are never edited, so in practice it equals Created
type Post struct {
	ID       int64
	BlogKey  string
	Subject  string
	Content  string
	Created  time.Time
	Modified time.Time
}
