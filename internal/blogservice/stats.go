package blogservice

import (
	"context"
	"time"
)

func (m *BlogModel) getBlogsWithStats(ctx context.Context, authorID int) ([]BlogStats, error) {
	query := `
		SELECT ` + blogColumns + `,
			(SELECT COUNT(*) FROM responses r WHERE r.blog_id = b.id AND r.liked) AS likes_count,
			(SELECT COUNT(*) FROM responses r WHERE r.blog_id = b.id AND r.disliked) AS dislikes_count,
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id) AS comments_count
		FROM blogs b
		WHERE b.author_id = $1
		ORDER BY b.created_date DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []BlogStats{}
	for rows.Next() {
		var s BlogStats
		err := scanBlog(rows, &s.Blog, &s.LikesCount, &s.DislikesCount, &s.CommentsCount)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getTopCommented(ctx context.Context, authorID, limit int) ([]RankedBlog, error) {
	query := `
		SELECT ` + blogColumns + `, COUNT(c.id) AS comments_count
		FROM blogs b
		LEFT JOIN comments c ON c.blog_id = b.id
		WHERE b.author_id = $1
		GROUP BY b.id
		ORDER BY comments_count DESC, b.id ASC
		LIMIT $2`

	return m.queryRanked(ctx, query, authorID, limit)
}

// getTopByReaction ranks the author's blogs by reactions of one kind recorded at or after since.
// Blogs without such a reaction are left out.
func (m *BlogModel) getTopByReaction(ctx context.Context, authorID int, reaction Reaction, since time.Time, limit int) ([]RankedBlog, error) {
	column := "r.liked"
	if reaction == ReactionDislike {
		column = "r.disliked"
	}

	query := `
		SELECT ` + blogColumns + `, COUNT(r.id) AS reactions_count
		FROM blogs b
		INNER JOIN responses r ON r.blog_id = b.id
		WHERE b.author_id = $1 AND ` + column + ` AND r.response_date >= $2
		GROUP BY b.id
		ORDER BY reactions_count DESC, b.id ASC
		LIMIT $3`

	return m.queryRanked(ctx, query, authorID, since, limit)
}

func (m *BlogModel) queryRanked(ctx context.Context, query string, args ...any) ([]RankedBlog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []RankedBlog{}
	for rows.Next() {
		var rb RankedBlog
		err := scanBlog(rows, &rb.Blog, &rb.Count)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, rb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
