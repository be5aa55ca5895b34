package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Prince260602/internhubs/internal/models"
)

func TestDefaultTemplates_CoverEveryKind(t *testing.T) {
	tpl, err := DefaultTemplates()
	if err != nil {
		t.Fatalf("DefaultTemplates: %v", err)
	}
	for _, k := range []models.NotificationKind{
		models.KindContactUs, models.KindInterview, models.KindNotInterested, models.KindHired, models.KindSubscribe,
	} {
		if !tpl.Has(k) {
			t.Fatalf("missing template for %q", k)
		}
	}
}

func TestRender(t *testing.T) {
	tpl, err := DefaultTemplates()
	if err != nil {
		t.Fatalf("DefaultTemplates: %v", err)
	}

	tests := []struct {
		name        string
		kind        models.NotificationKind
		vars        map[string]string
		wantTo      string
		wantReplyTo string
		wantSubject string
		wantInText  []string
	}{
		{
			name:        "contact goes to site mailbox",
			kind:        models.KindContactUs,
			vars:        map[string]string{"firstname": "Asha", "lastname": "Rao", "email": "asha@example.com", "message": "hi", "phone": "12345"},
			wantTo:      "admin@internhubs.test",
			wantReplyTo: "asha@example.com",
			wantSubject: "Contact form Submission from Asha Rao",
			wantInText:  []string{"Email: asha@example.com", "Phone: 12345", "Message: hi"},
		},
		{
			name:        "interview goes to candidate",
			kind:        models.KindInterview,
			vars:        map[string]string{"companyName": "Acme", "date": "2024-05-01", "time": "10:00", "link": "https://meet.example.com/x", "firstName": "Ravi", "lastName": "K", "userEmail": "ravi@example.com"},
			wantTo:      "ravi@example.com",
			wantSubject: "Interview Invitation from Acme",
			wantInText:  []string{"Dear Ravi K,", "Date: 2024-05-01", "Link: https://meet.example.com/x"},
		},
		{
			name:        "hired",
			kind:        models.KindHired,
			vars:        map[string]string{"companyName": "Acme", "roleName": "Backend Intern", "firstName": "Ravi", "lastName": "K", "userEmail": "ravi@example.com"},
			wantTo:      "ravi@example.com",
			wantSubject: "Job Offer from Acme",
			wantInText:  []string{"Backend Intern position at Acme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tpl.Render(tt.kind, tt.vars, "noreply@internhubs.test", "admin@internhubs.test")
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if len(e.To) != 1 || e.To[0] != tt.wantTo {
				t.Fatalf("to got=%v want=%s", e.To, tt.wantTo)
			}
			if e.ReplyTo != tt.wantReplyTo {
				t.Fatalf("reply-to got=%q want=%q", e.ReplyTo, tt.wantReplyTo)
			}
			if e.Subject != tt.wantSubject {
				t.Fatalf("subject got=%q want=%q", e.Subject, tt.wantSubject)
			}
			for _, s := range tt.wantInText {
				if !strings.Contains(e.Text, s) {
					t.Fatalf("text missing %q:\n%s", s, e.Text)
				}
			}
		})
	}
}

func TestMissing(t *testing.T) {
	tpl, _ := DefaultTemplates()
	got := tpl.Missing(models.KindSubscribe, map[string]string{"userEmail": "  "})
	if len(got) != 1 || got[0] != "userEmail" {
		t.Fatalf("got=%v want=[userEmail]", got)
	}
	if got := tpl.Missing(models.KindSubscribe, map[string]string{"userEmail": "a@b.co"}); len(got) != 0 {
		t.Fatalf("got=%v want none", got)
	}
}

func TestBuildRFC822_StripsHeaderInjection(t *testing.T) {
	raw := string(buildRFC822(models.Email{
		From:    "noreply@internhubs.test",
		To:      []string{"a@example.com"},
		ReplyTo: "x@example.com\r\nBcc: victim@example.com",
		Subject: "hello",
		Text:    "line1\nline2",
	}))
	if strings.Contains(raw, "\r\nBcc:") {
		t.Fatalf("header injection survived:\n%s", raw)
	}
	if !strings.Contains(raw, "line1\r\nline2") {
		t.Fatalf("body not CRLF normalised:\n%s", raw)
	}
}

func TestAddressFields(t *testing.T) {
	tpl, _ := DefaultTemplates()
	if got := tpl.AddressFields(models.KindContactUs); len(got) != 1 || got[0] != "email" {
		t.Fatalf("contactus got=%v want=[email]", got)
	}
	if got := tpl.AddressFields(models.KindHired); len(got) != 1 || got[0] != "userEmail" {
		t.Fatalf("hired got=%v want=[userEmail]", got)
	}
}

func TestRender_BlankRecipient(t *testing.T) {
	tpl, err := DefaultTemplates()
	if err != nil {
		t.Fatalf("DefaultTemplates: %v", err)
	}

	tests := []struct {
		name  string
		kind  models.NotificationKind
		vars  map[string]string
		admin string
	}{
		{"contact without site mailbox", models.KindContactUs, map[string]string{"firstname": "A", "lastname": "B", "email": "a@example.com", "message": "hi"}, ""},
		{"subscribe without site mailbox", models.KindSubscribe, map[string]string{"userEmail": "a@example.com"}, "  "},
		{"candidate address blank", models.KindHired, map[string]string{"companyName": "Acme", "roleName": "r", "firstName": "A", "lastName": "B", "userEmail": " "}, "admin@internhubs.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tpl.Render(tt.kind, tt.vars, "noreply@internhubs.test", tt.admin)
			if !errors.Is(err, ErrNoRecipient) {
				t.Fatalf("got=%v want ErrNoRecipient", err)
			}
		})
	}
}

func TestGmailSend_RejectsBlankRecipients(t *testing.T) {
	m := &GmailMailer{}
	for _, to := range [][]string{nil, {""}, {" "}} {
		if _, err := m.Send(context.Background(), models.Email{To: to, Subject: "x"}); err == nil {
			t.Fatalf("To=%q: expected error", to)
		}
	}
}

func TestBuildRFC822_LineEndings(t *testing.T) {
	raw := string(buildRFC822(models.Email{
		From: "a@example.com",
		To:   []string{"b@example.com"},
		Text: "line one\r\nline two\nline three\n",
	}))
	body := raw[strings.Index(raw, "\r\n\r\n")+4:]
	if body != "line one\r\nline two\r\nline three\r\n" {
		t.Fatalf("body got=%q", body)
	}
	if strings.Contains(raw, "\r\r\n") {
		t.Fatalf("doubled carriage return in %q", raw)
	}
}
