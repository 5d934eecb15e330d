package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sushihentaime/blogapp/internal/common"
)

// publishCommentNotification tells the mail consumer that an author's blog was commented on.
// Failures are logged, the comment itself is already stored.
func (s *BlogService) publishCommentNotification(ctx context.Context, c *Comment) {
	if s.mb == nil {
		return
	}

	n, err := s.m.getCommentNotification(ctx, c.ID)
	if err != nil {
		if !errors.Is(err, common.ErrRecordNotFound) {
			s.logger.Error("could not load comment notification", slog.Int("comment_id", c.ID), slog.String("error", err.Error()))
		}
		return
	}

	// authors are not notified about their own comments
	if n.Author == n.Commenter {
		return
	}

	msg, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("could not encode comment notification", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.BlogCommentedKey, common.BlogExchange)
	if err != nil {
		s.logger.Error("could not publish comment notification", slog.Int("comment_id", c.ID), slog.String("error", err.Error()))
		return
	}

	s.logger.Info("comment notification published", slog.Int("blog_id", n.BlogID), slog.Int("comment_id", c.ID))
}
