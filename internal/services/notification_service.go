package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Prince260602/internhubs/internal/mail"
	"github.com/Prince260602/internhubs/internal/models"
	pgrepo "github.com/Prince260602/internhubs/internal/repositories/postgres"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MailQueue hands a rendered message to the background workers.
type MailQueue interface {
	Enqueue(ctx context.Context, e models.Email) (string, error)
}

// Dispatch identifies a sent or queued message.
type Dispatch struct {
	ID     string
	Queued bool
}

type NotificationService interface {
	Notify(ctx context.Context, kind models.NotificationKind, vars map[string]string) (Dispatch, error)
	// Deliver sends an already rendered message and records the attempt.
	Deliver(ctx context.Context, e models.Email) (string, error)
}

type NotificationConfig struct {
	// From is the authenticated sender; Admin receives contact and
	// subscription mail. Both are MAIL_USER in practice.
	From  string
	Admin string
}

type notificationService struct {
	cfg       NotificationConfig
	templates *mail.Templates
	mailer    mail.Mailer
	queue     MailQueue // nil sends inline
	ledger    pgrepo.NotificationRepo
	validate  *validator.Validate
	log       *logrus.Logger
}

func NewNotificationService(cfg NotificationConfig, templates *mail.Templates, mailer mail.Mailer, queue MailQueue, ledger pgrepo.NotificationRepo, log *logrus.Logger) NotificationService {
	if ledger == nil {
		ledger = pgrepo.NopNotificationRepo()
	}
	return &notificationService{
		cfg:       cfg,
		templates: templates,
		mailer:    mailer,
		queue:     queue,
		ledger:    ledger,
		validate:  validator.New(),
		log:       log,
	}
}

func (s *notificationService) Notify(ctx context.Context, kind models.NotificationKind, vars map[string]string) (Dispatch, error) {
	const op = "NotificationService.Notify"

	if !s.templates.Has(kind) {
		return Dispatch{}, utils.E(utils.CodeNotFound, op, "unknown notification "+string(kind), nil)
	}
	if missing := s.templates.Missing(kind, vars); len(missing) > 0 {
		sort.Strings(missing)
		return Dispatch{}, utils.E(utils.CodeInvalidArgument, op, "Missing required fields: "+strings.Join(missing, ", "), nil)
	}
	for _, f := range s.templates.AddressFields(kind) {
		if err := s.validate.Var(vars[f], "required,email"); err != nil {
			return Dispatch{}, utils.E(utils.CodeInvalidArgument, op, "Invalid email address in "+f, nil)
		}
	}

	e, err := s.templates.Render(kind, vars, s.cfg.From, s.cfg.Admin)
	if err != nil {
		if errors.Is(err, mail.ErrNoRecipient) {
			return Dispatch{}, utils.E(utils.CodeUnavailable, op, "Mail recipient is not configured", nil)
		}
		return Dispatch{}, utils.E(utils.CodeInternal, op, "failed to render email", err)
	}

	if s.queue != nil {
		id, err := s.queue.Enqueue(ctx, e)
		if err != nil {
			return Dispatch{}, utils.E(utils.CodeUnavailable, op, "Failed to queue email", err)
		}
		return Dispatch{ID: id, Queued: true}, nil
	}

	id, err := s.Deliver(ctx, e)
	if err != nil {
		return Dispatch{}, err
	}
	return Dispatch{ID: id}, nil
}

func (s *notificationService) Deliver(ctx context.Context, e models.Email) (string, error) {
	const op = "NotificationService.Deliver"

	id, sendErr := s.mailer.Send(ctx, e)
	s.record(ctx, e, id, sendErr)
	if sendErr != nil {
		return "", utils.E(utils.CodeUnavailable, op, "Failed to send email", sendErr)
	}
	return id, nil
}

func (s *notificationService) record(ctx context.Context, e models.Email, providerID string, sendErr error) {
	payload, _ := json.Marshal(e)
	row := &models.NotificationLog{
		ID:         uuid.NewString(),
		Kind:       e.Kind,
		Sender:     e.From,
		Recipients: e.To,
		Subject:    e.Subject,
		Status:     "sent",
		ProviderID: providerID,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
	if sendErr != nil {
		row.Status = "failed"
		row.Error = sendErr.Error()
	}
	if err := s.ledger.Insert(context.WithoutCancel(ctx), row); err != nil {
		s.log.WithError(err).WithField("kind", e.Kind).Warn("notification ledger write failed")
	}
}
