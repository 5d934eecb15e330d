package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogapp/internal/common"
)

var (
	ErrUserForeignKey = errors.New("author does not exist")
)

const blogColumns = "b.id, b.name, b.content, b.author_id, b.created_date, b.modified_date"

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner, blog *Blog, extra ...any) error {
	dest := append([]any{&blog.ID, &blog.Name, &blog.Content, &blog.AuthorID, &blog.CreatedDate, &blog.ModifiedDate}, extra...)
	return row.Scan(dest...)
}

// insert relies on now() being fixed for the transaction so created_date equals modified_date.
func (m *BlogModel) insert(ctx context.Context, name, content string, authorID int) (*Blog, error) {
	query := `
		INSERT INTO blogs AS b (name, content, author_id, created_date, modified_date)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + blogColumns

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, name, content, authorID), &blog)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_author_id_fkey"):
			return nil, ErrUserForeignKey
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		WHERE b.id = $1`

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// lockOwnedBlog locks the blog row for the rest of tx and checks that requesterID owns it.
func (m *BlogModel) lockOwnedBlog(ctx context.Context, tx *sql.Tx, id, requesterID int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		WHERE b.id = $1
		FOR UPDATE`

	var blog Blog
	err := scanBlog(tx.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if blog.AuthorID != requesterID {
		return nil, common.ErrForbidden
	}

	return &blog, nil
}

// updateBlog runs validate once the blog is locked and owned by requesterID.
func (m *BlogModel) updateBlog(ctx context.Context, id, requesterID int, name, content *string, validate func() error) (*Blog, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	blog, err := m.lockOwnedBlog(ctx, tx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if err := validate(); err != nil {
		return nil, err
	}

	if name != nil {
		blog.Name = *name
	}
	if content != nil {
		blog.Content = *content
	}

	query := `
		UPDATE blogs AS b
		SET name = $1, content = $2, modified_date = clock_timestamp()
		WHERE b.id = $3
		RETURNING ` + blogColumns

	err = scanBlog(tx.QueryRowContext(ctx, query, blog.Name, blog.Content, blog.ID), blog)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return blog, nil
}

// deleteBlog removes the blog and everything that references it in one transaction.
func (m *BlogModel) deleteBlog(ctx context.Context, id, requesterID int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = m.lockOwnedBlog(ctx, tx, id, requesterID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE blog_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE blog_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}

	return tx.Commit()
}

func (m *BlogModel) userExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
