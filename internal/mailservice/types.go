package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/blogapp/internal/common"
)

// MailService turns blog.commented events into notification emails for the blog author.
type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc

	// sleep waits between delivery attempts.
	sleep func(time.Duration)
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

// Mail is the SMTP Mailer. Sends are serialised over the single dialer.
type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (subject, plainBody, htmlBody *bytes.Buffer, err error)
}

// Template renders the embedded email templates.
type Template struct{}
