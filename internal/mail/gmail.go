package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"strings"

	"github.com/Prince260602/internhubs/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends through the Gmail API as the account owning the token.
type GmailMailer struct {
	svc *gmail.Service
}

// NewGmailMailer loads OAuth client credentials and a previously authorised
// token from disk. The token must carry the gmail.send scope.
func NewGmailMailer(ctx context.Context, credentialsFile, tokenFile string) (*GmailMailer, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &GmailMailer{svc: svc}, nil
}

func (m *GmailMailer) Send(ctx context.Context, e models.Email) (string, error) {
	if len(e.To) == 0 || strings.TrimSpace(strings.Join(e.To, "")) == "" {
		return "", errors.New("gmail: no recipients")
	}
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(buildRFC822(e))}
	sent, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send: %w", err)
	}
	return sent.Id, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func buildRFC822(e models.Email) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(k + ": " + headerSafe(v) + "\r\n")
	}
	header("From", e.From)
	header("To", strings.Join(e.To, ", "))
	header("Reply-To", e.ReplyTo)
	header("Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(crlf(e.Text))
	return b.Bytes()
}

// crlf normalises line endings to CRLF without doubling existing ones.
func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// headerSafe drops CR and LF so request data cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}
