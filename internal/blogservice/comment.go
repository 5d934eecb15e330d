package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/blogapp/internal/common"
)

func (m *BlogModel) insertComment(ctx context.Context, blogID, userID int, text string) (*Comment, error) {
	query := `
		INSERT INTO comments AS c (blog_id, user_id, comment_text, created_date, modified_date)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + commentColumns

	var c Comment
	err := scanComment(m.db.QueryRowContext(ctx, query, blogID, userID, text), &c)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_blog_id_fkey"):
			return nil, common.ErrRecordNotFound
		case common.ForeignKeyError(err, "comments_user_id_fkey"):
			return nil, ErrUserForeignKey
		default:
			return nil, err
		}
	}

	return &c, nil
}

// upsertResponse keeps a single response per user and blog. Changing the reaction moves response_date forward.
func (m *BlogModel) upsertResponse(ctx context.Context, blogID, userID int, reaction Reaction) (*Response, error) {
	query := `
		INSERT INTO responses (blog_id, user_id, liked, disliked)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT responses_blog_user_key
		DO UPDATE SET liked = EXCLUDED.liked, disliked = EXCLUDED.disliked, response_date = now()
		RETURNING id, blog_id, user_id, liked, disliked, response_date`

	var r Response
	err := m.db.QueryRowContext(ctx, query, blogID, userID, reaction == ReactionLike, reaction == ReactionDislike).
		Scan(&r.ID, &r.BlogID, &r.UserID, &r.Like, &r.Dislike, &r.ResponseDate)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "responses_blog_id_fkey"):
			return nil, common.ErrRecordNotFound
		case common.ForeignKeyError(err, "responses_user_id_fkey"):
			return nil, ErrUserForeignKey
		default:
			return nil, err
		}
	}

	return &r, nil
}

func (m *BlogModel) getCommentNotification(ctx context.Context, commentID int) (*common.CommentNotification, error) {
	query := `
		SELECT a.email, a.username, b.id, b.name, u.username, c.comment_text
		FROM comments c
		INNER JOIN blogs b ON b.id = c.blog_id
		INNER JOIN users a ON a.id = b.author_id
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	var n common.CommentNotification
	err := m.db.QueryRowContext(ctx, query, commentID).Scan(&n.Email, &n.Author, &n.BlogID, &n.BlogName, &n.Commenter, &n.Comment)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &n, nil
}
