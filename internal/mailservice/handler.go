package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/blogapp/internal/common"
	"golang.org/x/exp/rand"
)

const (
	commentTemplate = "comment_notification.html"

	maxRetries = 5
	baseDelay  = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		sleep:  time.Sleep,
	}
}

// SendCommentNotifications consumes blog.commented events and emails the blog author until Close is called.
func (s *MailService) SendCommentNotifications() {
	msgs, err := s.mb.Consume(common.BlogCommentedKey, common.BlogExchange, common.BlogCommentedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data common.CommentNotification
				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				s.deliver(data)
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendCommentNotifications due to context cancellation")
				return
			}
		}
	}()
}

// deliver uses exponential backoff with jitter between attempts.
func (s *MailService) deliver(data common.CommentNotification) bool {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(data.Email, data, commentTemplate)
		if err == nil {
			s.logger.Info("comment notification sent", slog.String("email", data.Email))
			common.NotificationsSent.WithLabelValues("sent").Inc()
			return true
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying comment notification", slog.String("email", data.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))
		s.sleep(delay)
	}

	s.logger.Error("could not send comment notification", slog.String("email", data.Email))
	common.NotificationsSent.WithLabelValues("failed").Inc()
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
