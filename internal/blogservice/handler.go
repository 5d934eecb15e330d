package blogservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/blogapp/internal/common"
)

// NewBlogService creates the blog service. mb may be nil, in which case no events are published.
func NewBlogService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	return &BlogService{m: newBlogModel(db), mb: mb, logger: logger}
}

type CreateBlogRequest struct {
	Name     string
	Content  string
	AuthorID int
}

// CreateBlog creates a new blog owned by the author.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateContent(v, req.Content)
	validateInt(v, req.AuthorID, "author")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.insert(ctx, req.Name, req.Content, req.AuthorID)
}

// GetBlogByID returns a blog by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// UpdateBlogRequest carries an edit. A nil field was not provided and stays unchanged.
type UpdateBlogRequest struct {
	ID          int
	RequesterID int
	Name        *string
	Content     *string
}

// UpdateBlog edits the provided fields of a blog. Only the author may edit it.
// Content may be cleared, the name may not. The modified date is refreshed on every edit.
// A missing blog or a foreign requester is reported before an invalid name.
func (s *BlogService) UpdateBlog(ctx context.Context, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateInt(v, req.RequesterID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	validateFields := func() error {
		v := common.NewValidator()
		if req.Name != nil {
			validateName(v, *req.Name)
		}
		if !v.Valid() {
			return v.ValidationError()
		}
		return nil
	}

	return s.m.updateBlog(ctx, req.ID, req.RequesterID, req.Name, req.Content, validateFields)
}

// DeleteBlog deletes a blog with its comments and responses. Only the author may delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, requesterID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, requesterID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteBlog(ctx, id, requesterID)
}

// GetUserBlogsWithStats returns every blog of the author with like, dislike and comment counts.
func (s *BlogService) GetUserBlogsWithStats(ctx context.Context, authorID int) ([]BlogStats, error) {
	return s.m.getBlogsWithStats(ctx, authorID)
}

// GetTopCommentedBlogs returns up to TopN of the author's blogs by comment count.
func (s *BlogService) GetTopCommentedBlogs(ctx context.Context, authorID int) ([]RankedBlog, error) {
	return s.m.getTopCommented(ctx, authorID, TopN)
}

// GetTopLikedBlogs returns up to TopN of the author's blogs by likes received since the given time.
func (s *BlogService) GetTopLikedBlogs(ctx context.Context, authorID int, since time.Time) ([]RankedBlog, error) {
	return s.m.getTopByReaction(ctx, authorID, ReactionLike, since, TopN)
}

// GetTopDislikedBlogs returns up to TopN of the author's blogs by dislikes received since the given time.
func (s *BlogService) GetTopDislikedBlogs(ctx context.Context, authorID int, since time.Time) ([]RankedBlog, error) {
	return s.m.getTopByReaction(ctx, authorID, ReactionDislike, since, TopN)
}

// GetDashboard collects the author's listing and rankings. The reaction rankings look back ReactionWindow from now.
func (s *BlogService) GetDashboard(ctx context.Context, authorID int, now time.Time) (*Dashboard, error) {
	v := common.NewValidator()
	validateInt(v, authorID, "author")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	var (
		d     Dashboard
		err   error
		since = now.Add(-ReactionWindow)
	)

	if d.Blogs, err = s.GetUserBlogsWithStats(ctx, authorID); err != nil {
		return nil, err
	}
	if d.TopCommentedBlogs, err = s.GetTopCommentedBlogs(ctx, authorID); err != nil {
		return nil, err
	}
	if d.TopLikedBlogs, err = s.GetTopLikedBlogs(ctx, authorID, since); err != nil {
		return nil, err
	}
	if d.TopDislikedBlogs, err = s.GetTopDislikedBlogs(ctx, authorID, since); err != nil {
		return nil, err
	}

	return &d, nil
}

type CreateCommentRequest struct {
	BlogID int
	UserID int
	Text   string
}

// AddComment stores a comment on a blog and notifies the author when someone else commented.
func (s *BlogService) AddComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, req.BlogID, "blog")
	validateInt(v, req.UserID, "user")
	validateCommentText(v, req.Text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c, err := s.m.insertComment(ctx, req.BlogID, req.UserID, req.Text)
	if err != nil {
		return nil, err
	}

	s.publishCommentNotification(ctx, c)

	return c, nil
}

type ReactRequest struct {
	BlogID   int
	UserID   int
	Reaction Reaction
}

// ReactToBlog records the user's like or dislike. A user holds at most one reaction per blog; reacting again replaces it.
func (s *BlogService) ReactToBlog(ctx context.Context, req *ReactRequest) (*Response, error) {
	v := common.NewValidator()
	validateInt(v, req.BlogID, "blog")
	validateInt(v, req.UserID, "user")
	validateReaction(v, req.Reaction)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.upsertResponse(ctx, req.BlogID, req.UserID, req.Reaction)
}

// GetRecentLikedBlogs returns up to TopN blogs the user liked, most recent first.
func (s *BlogService) GetRecentLikedBlogs(ctx context.Context, userID int) ([]Blog, error) {
	return s.m.getRecentLikedBlogs(ctx, userID, TopN)
}

// GetCommentHistory returns every comment the user wrote, newest first.
func (s *BlogService) GetCommentHistory(ctx context.Context, userID int) ([]Comment, error) {
	return s.m.getCommentsByUser(ctx, userID)
}

// GetCommentHistoryForAuthor returns the user's comments on blogs written by authorID.
func (s *BlogService) GetCommentHistoryForAuthor(ctx context.Context, userID, authorID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.userExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrRecordNotFound
	}

	return s.m.getCommentsByUserOnAuthor(ctx, userID, authorID)
}

// GetRecentActivity collects the user's recent likes and comment history.
// The per-author history is only computed when authorID is not nil.
func (s *BlogService) GetRecentActivity(ctx context.Context, userID int, authorID *int) (*RecentActivity, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	var (
		a   RecentActivity
		err error
	)

	if a.RecentLikedBlogs, err = s.GetRecentLikedBlogs(ctx, userID); err != nil {
		return nil, err
	}
	if a.CommentHistory, err = s.GetCommentHistory(ctx, userID); err != nil {
		return nil, err
	}

	if authorID != nil {
		comments, err := s.GetCommentHistoryForAuthor(ctx, userID, *authorID)
		if err != nil {
			return nil, err
		}
		a.ForAuthor = &comments
	}

	return &a, nil
}
