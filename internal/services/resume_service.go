package services

import (
	"bufio"
	"context"
	"io"
	"net/http"

	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/storage"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/google/uuid"
)

const MaxResumeBytes = 10 << 20

type ResumeService interface {
	Upload(ctx context.Context, userID string, size int64, r io.Reader) (string, error)
}

type resumeService struct {
	users    mongorepo.UserRepository
	uploader storage.Uploader // nil when GCS_BUCKET is unset
}

func NewResumeService(users mongorepo.UserRepository, uploader storage.Uploader) ResumeService {
	return &resumeService{users: users, uploader: uploader}
}

func (s *resumeService) Upload(ctx context.Context, userID string, size int64, r io.Reader) (string, error) {
	const op = "ResumeService.Upload"

	user, err := resolveUser(ctx, s.users, op, userID)
	if err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", utils.E(utils.CodeUnavailable, op, "Resume storage is not configured", nil)
	}
	if size <= 0 || size > MaxResumeBytes {
		return "", utils.E(utils.CodeInvalidArgument, op, "Resume must be a PDF of at most 10MB", nil)
	}

	br := bufio.NewReaderSize(r, 512)
	head, _ := br.Peek(512)
	if http.DetectContentType(head) != "application/pdf" {
		return "", utils.E(utils.CodeInvalidArgument, op, "Resume must be a PDF of at most 10MB", nil)
	}

	object := "resumes/" + user.ID.Hex() + "/" + uuid.NewString() + ".pdf"
	link, err := s.uploader.Upload(ctx, object, "application/pdf", io.LimitReader(br, MaxResumeBytes))
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "Failed to store resume", err)
	}

	if err := s.users.SetResumeLink(ctx, user.ID, link); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to save resume link", err)
	}
	return link, nil
}
