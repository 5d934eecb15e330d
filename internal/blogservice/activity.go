package blogservice

import (
	"context"
	"database/sql"
)

const commentColumns = "c.id, c.blog_id, c.user_id, c.comment_text, c.created_date, c.modified_date"

func scanComment(row rowScanner, c *Comment) error {
	return row.Scan(&c.ID, &c.BlogID, &c.UserID, &c.CommentText, &c.CreatedDate, &c.ModifiedDate)
}

func (m *BlogModel) getRecentLikedBlogs(ctx context.Context, userID, limit int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM responses r
		INNER JOIN blogs b ON b.id = r.blog_id
		WHERE r.user_id = $1 AND r.liked
		ORDER BY r.response_date DESC, r.id DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getCommentsByUser(ctx context.Context, userID int) ([]Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		WHERE c.user_id = $1
		ORDER BY c.created_date DESC, c.id DESC`

	return m.queryComments(ctx, query, userID)
}

// getCommentsByUserOnAuthor returns the comments userID left on blogs written by authorID.
func (m *BlogModel) getCommentsByUserOnAuthor(ctx context.Context, userID, authorID int) ([]Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		INNER JOIN blogs b ON b.id = c.blog_id
		WHERE c.user_id = $1 AND b.author_id = $2
		ORDER BY c.created_date DESC, c.id DESC`

	return m.queryComments(ctx, query, userID, authorID)
}

func (m *BlogModel) queryComments(ctx context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]Comment, error) {
	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
