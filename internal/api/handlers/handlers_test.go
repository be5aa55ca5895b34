package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Prince260602/internhubs/internal/api/middleware"
	"github.com/Prince260602/internhubs/internal/auth"
	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/services"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/Prince260602/internhubs/internal/validation"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubProfiles keeps one profile per user and validates with the real gateway.
type stubProfiles struct {
	mu     sync.Mutex
	gw     *validation.Gateway
	byUser map[string]*models.Profile
}

func (s *stubProfiles) Create(_ context.Context, userID string, p validation.Payload) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUser[userID]; ok {
		return nil, utils.E(utils.CodeProfileExists, "stub", "Profile already created", nil)
	}
	if _, err := s.gw.ValidateAll(p); err != nil {
		return nil, err
	}
	uid, _ := primitive.ObjectIDFromHex(userID)
	prof := &models.Profile{ID: primitive.NewObjectID(), UserID: uid}
	for _, sec := range models.SectionOrder {
		prof.SetRef(sec, primitive.NewObjectID())
	}
	s.byUser[userID] = prof
	return prof, nil
}

func (s *stubProfiles) Get(_ context.Context, userID string) (*models.ProfileAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byUser[userID]
	if !ok {
		return nil, utils.E(utils.CodeProfileNotFound, "stub", "Profile not created", nil)
	}
	return &models.ProfileAggregate{Profile: p, Complete: true}, nil
}

func (s *stubProfiles) Update(ctx context.Context, userID string, p validation.Payload) (*models.ProfileAggregate, error) {
	if _, err := s.gw.ValidatePresent(p); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

const profileBody = `{
  "personalInfo": {"firstName":"Asha","lastName":"Rao","phone":"9876543210","email":"asha@example.com","address":"12 MG Road","state":"Karnataka","city":"Bengaluru","code":"560001"},
  "education": {"clg":"RVCE","branch":"CSE","educationLevel":"B.E.","startDate":"2020-08"},
  "workExperienceInfo": {"workExperiences":[]},
  "socialMedia": {},
  "skillset": {"skills":["go"]}
}`

func newProfileRouter(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gw, err := validation.NewGateway()
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}
	ti := auth.NewTokenIssuer("test-secret", "", time.Hour)
	h := NewProfileHandler(&stubProfiles{gw: gw, byUser: map[string]*models.Profile{}}, ProfileHandlerConfig{})

	r := gin.New()
	p := r.Group("/profile", middleware.JWTAuth(ti))
	p.POST("/addprofile", h.Add)
	p.GET("/getprofile", h.Get)
	p.PUT("/updateprofile", h.Update)
	return r, ti
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddProfile_CreateThenDuplicate(t *testing.T) {
	r, ti := newProfileRouter(t)
	tok, _ := ti.Issue(primitive.NewObjectID().Hex(), "user")

	w := do(r, http.MethodPost, "/profile/addprofile", tok, profileBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status got=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Msg        string         `json:"msg"`
		NewProfile models.Profile `json:"newProfile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.NewProfile.ID.IsZero() {
		t.Fatalf("newProfile._id missing: %s", w.Body.String())
	}
	for _, sec := range models.SectionOrder {
		if created.NewProfile.Ref(sec).IsZero() {
			t.Fatalf("newProfile missing %s reference", sec)
		}
	}

	w = do(r, http.MethodPost, "/profile/addprofile", tok, profileBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status got=%d want=400", w.Code)
	}
	if got := w.Body.String(); got != `{"error":"Profile already created"}` {
		t.Fatalf("body got=%s", got)
	}
}

func TestAddProfile_Errors(t *testing.T) {
	r, ti := newProfileRouter(t)
	tok, _ := ti.Issue(primitive.NewObjectID().Hex(), "user")

	tests := []struct {
		name    string
		token   string
		body    string
		want    int
		error   string
		section string
	}{
		{name: "no token", body: profileBody, want: http.StatusUnauthorized, error: "User not authenticated"},
		{name: "malformed json", token: tok, body: `{"personalInfo":`, want: http.StatusBadRequest},
		{
			name:    "missing education",
			token:   tok,
			body:    `{"personalInfo":{"firstName":"A","lastName":"B","phone":"9876543210","email":"a@example.com","address":"x","state":"y","city":"z","code":"560001"}}`,
			want:    http.StatusBadRequest,
			section: "education",
			error:   "Validation failed. Please check your input data for education details.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/profile/addprofile", tt.token, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status got=%d want=%d body=%s", w.Code, tt.want, w.Body.String())
			}
			var body APIError
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if tt.error != "" && body.Error != tt.error {
				t.Fatalf("error got=%q want=%q", body.Error, tt.error)
			}
			if body.Section != tt.section {
				t.Fatalf("section got=%q want=%q", body.Section, tt.section)
			}
		})
	}
}

func TestGetAndUpdateProfile(t *testing.T) {
	r, ti := newProfileRouter(t)
	tok, _ := ti.Issue(primitive.NewObjectID().Hex(), "user")

	w := do(r, http.MethodGet, "/profile/getprofile", tok, "")
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"Profile not created"}` {
		t.Fatalf("get before create got=%d %s", w.Code, w.Body.String())
	}

	do(r, http.MethodPost, "/profile/addprofile", tok, profileBody)

	w = do(r, http.MethodGet, "/profile/getprofile", tok, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get got=%d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPut, "/profile/updateprofile", tok, `{"skillset":{"skills":["go","redis"]}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("update got=%d %s", w.Code, w.Body.String())
	}
	var out map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if _, ok := out["updatedProfile"]; !ok {
		t.Fatalf("updatedProfile missing: %s", w.Body.String())
	}

	w = do(r, http.MethodPut, "/profile/updateprofile", tok, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty update got=%d", w.Code)
	}
}

type stubNotifier struct {
	kind models.NotificationKind
	vars map[string]string
	d    services.Dispatch
	err  error
}

func (s *stubNotifier) Notify(_ context.Context, kind models.NotificationKind, vars map[string]string) (services.Dispatch, error) {
	s.kind, s.vars = kind, vars
	return s.d, s.err
}

func (s *stubNotifier) Deliver(context.Context, models.Email) (string, error) { return "", nil }

func TestNotificationSend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("sent inline", func(t *testing.T) {
		stub := &stubNotifier{d: services.Dispatch{ID: "m-1"}}
		r := gin.New()
		r.POST("/subscribe", NewNotificationHandler(stub).Send(models.KindSubscribe))

		w := do(r, http.MethodPost, "/subscribe", "", `{"userEmail":"a@example.com","phone":9876543210,"extra":{"x":1}}`)
		if w.Code != http.StatusOK || w.Body.String() != `{"emailSent":"m-1","msg":"Email sent"}` {
			t.Fatalf("got=%d %s", w.Code, w.Body.String())
		}
		if stub.kind != models.KindSubscribe || stub.vars["phone"] != "9876543210" {
			t.Fatalf("vars got=%v", stub.vars)
		}
		if _, ok := stub.vars["extra"]; ok {
			t.Fatalf("nested values must be dropped")
		}
	})

	t.Run("queued", func(t *testing.T) {
		stub := &stubNotifier{d: services.Dispatch{ID: "1-0", Queued: true}}
		r := gin.New()
		r.POST("/hired", NewNotificationHandler(stub).Send(models.KindHired))

		w := do(r, http.MethodPost, "/hired", "", `{}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("got=%d", w.Code)
		}
	})

	t.Run("service error", func(t *testing.T) {
		stub := &stubNotifier{err: utils.E(utils.CodeInvalidArgument, "stub", "Missing required fields: userEmail", nil)}
		r := gin.New()
		r.POST("/subscribe", NewNotificationHandler(stub).Send(models.KindSubscribe))

		w := do(r, http.MethodPost, "/subscribe", "", `{}`)
		if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"Missing required fields: userEmail"}` {
			t.Fatalf("got=%d %s", w.Code, w.Body.String())
		}
	})
}
