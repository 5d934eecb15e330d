package blogservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/blogapp/internal/common"
)

const (
	// TopN bounds every ranked listing.
	TopN = 5
	// ReactionWindow is the lookback used by the recently liked/disliked rankings.
	ReactionWindow = 3 * 24 * time.Hour
)

type Blog struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	AuthorID     int       `json:"author"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

// BlogStats is a blog annotated with its reaction and comment totals.
type BlogStats struct {
	Blog
	LikesCount    int `json:"likes_count"`
	DislikesCount int `json:"dislikes_count"`
	CommentsCount int `json:"comments_count"`
}

// RankedBlog is a blog together with the metric it was ranked by.
type RankedBlog struct {
	Blog
	Count int `json:"count"`
}

type Comment struct {
	ID           int       `json:"id"`
	BlogID       int       `json:"blog"`
	UserID       int       `json:"user"`
	CommentText  string    `json:"comment_text"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

type Response struct {
	ID           int       `json:"id"`
	BlogID       int       `json:"blog"`
	UserID       int       `json:"user"`
	Like         bool      `json:"like"`
	Dislike      bool      `json:"dislike"`
	ResponseDate time.Time `json:"response_date"`
}

type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Dashboard is everything an author sees about their own blogs.
type Dashboard struct {
	Blogs             []BlogStats  `json:"blogs"`
	TopCommentedBlogs []RankedBlog `json:"top_commented_blogs"`
	TopLikedBlogs     []RankedBlog `json:"top_liked_blogs"`
	TopDislikedBlogs  []RankedBlog `json:"top_disliked_blogs"`
}

type RecentActivity struct {
	RecentLikedBlogs []Blog    `json:"my_recent_liked_blogs"`
	CommentHistory   []Comment `json:"my_comment_history"`

	// ForAuthor is nil when no author filter was requested.
	ForAuthor *[]Comment `json:"my_comment_history_for_author,omitempty"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m      *BlogModel
	mb     common.MessageProducer
	logger *slog.Logger
}
