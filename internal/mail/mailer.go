package mail

import (
	"context"
	"strings"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Mailer delivers a rendered message and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, e models.Email) (string, error)
}

// LogMailer writes messages to the log instead of sending them. Used in
// development and when MAIL_TRANSPORT=log.
type LogMailer struct {
	log *logrus.Logger
}

func NewLogMailer(log *logrus.Logger) *LogMailer { return &LogMailer{log: log} }

func (m *LogMailer) Send(_ context.Context, e models.Email) (string, error) {
	id := "log-" + uuid.NewString()
	m.log.WithFields(logrus.Fields{
		"message_id": id,
		"kind":       e.Kind,
		"to":         strings.Join(e.To, ","),
		"subject":    e.Subject,
	}).Info("mail (log transport)")
	return id, nil
}
