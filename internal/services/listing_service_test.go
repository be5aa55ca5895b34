package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Prince260602/internhubs/internal/cache"
	"github.com/Prince260602/internhubs/internal/events"
	"github.com/Prince260602/internhubs/internal/logger"
	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeJobRepo struct {
	mu    sync.Mutex
	docs  []models.Job
	lists int
}

func (f *fakeJobRepo) Insert(_ context.Context, doc *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, _ int64) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]models.Job{}, f.docs...), nil
}

func (f *fakeJobRepo) Update(_ context.Context, id string, set bson.M) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.docs {
		if f.docs[i].JobID != id {
			continue
		}
		if v, ok := set["role_name"].(string); ok {
			f.docs[i].RoleName = v
		}
		if v, ok := set["updated_at"].(time.Time); ok {
			f.docs[i].UpdatedAt = v
		}
		out := f.docs[i]
		return &out, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeJobRepo) Delete(_ context.Context, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.docs {
		if f.docs[i].JobID == id {
			out := f.docs[i]
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

// memCache stores JSON like the Redis cache does.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func sampleJob() *models.Job {
	return &models.Job{
		RoleName:       "Backend Engineer",
		Location:       "Remote",
		JobType:        "Full-time",
		SkillsRequired: []string{"go"},
		Description:    "APIs",
		Salary:         1200000,
		JobDeadline:    "2026-12-31",
		CompanyID:      "c-1",
		CompanyName:    "Acme",
	}
}

func TestJobService_CreateStampsAndPublishes(t *testing.T) {
	repo := &fakeJobRepo{}
	bus := events.NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed, _ := bus.Subscribe(ctx)

	svc := NewJobService(repo, newMemCache(), bus, ListingOptions{CacheTTL: time.Minute}, logger.Discard())
	job, err := svc.Create(ctx, sampleJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.JobID == "" || job.CreatedAt.IsZero() {
		t.Fatalf("job not stamped: %+v", job)
	}

	select {
	case ev := <-feed:
		if ev.Type != "job.created" || ev.ID != job.JobID {
			t.Fatalf("event got=%+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event published")
	}
}

func TestJobService_ListIsCachedUntilWrite(t *testing.T) {
	repo := &fakeJobRepo{}
	c := newMemCache()
	svc := NewJobService(repo, c, events.NewMemoryBus(), ListingOptions{CacheTTL: time.Minute}, logger.Discard())
	ctx := context.Background()

	job, _ := svc.Create(ctx, sampleJob())

	for i := 0; i < 3; i++ {
		got, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].JobID != job.JobID {
			t.Fatalf("List got=%+v", got)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("repository reads got=%d want=1", repo.lists)
	}
	if !c.has(cache.KeyJobsAll) {
		t.Fatalf("list not cached")
	}

	name := "Staff Engineer"
	if _, err := svc.Update(ctx, job.JobID, models.JobPatch{RoleName: &name}.Fields()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.has(cache.KeyJobsAll) {
		t.Fatalf("cache not invalidated on update")
	}

	got, _ := svc.List(ctx)
	if got[0].RoleName != name {
		t.Fatalf("stale list after update: %q", got[0].RoleName)
	}
	if repo.lists != 2 {
		t.Fatalf("repository reads got=%d want=2", repo.lists)
	}
}

func TestJobService_EmptyListIsNotNil(t *testing.T) {
	svc := NewJobService(&fakeJobRepo{}, cache.Nop{}, events.NewMemoryBus(), ListingOptions{}, logger.Discard())
	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got=%#v want empty slice", got)
	}
}

func TestJobService_NotFoundAndBadInput(t *testing.T) {
	svc := NewJobService(&fakeJobRepo{}, cache.Nop{}, events.NewMemoryBus(), ListingOptions{}, logger.Discard())
	ctx := context.Background()
	name := "x"

	_, err := svc.Update(ctx, "missing", models.JobPatch{RoleName: &name}.Fields())
	if !utils.IsCode(err, utils.CodeNotFound) || err.(*utils.AppError).PublicMessage() != "Job not found" {
		t.Fatalf("Update got=%v", err)
	}
	_, err = svc.Delete(ctx, "missing")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("Delete got=%v", err)
	}
	_, err = svc.Update(ctx, "id", map[string]any{})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("empty update got=%v", err)
	}
	_, err = svc.Delete(ctx, "")
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("empty id got=%v", err)
	}
}

func TestJobService_DeleteInvalidatesAndPublishes(t *testing.T) {
	repo := &fakeJobRepo{}
	c := newMemCache()
	bus := events.NewMemoryBus()
	svc := NewJobService(repo, c, bus, ListingOptions{CacheTTL: time.Minute}, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job, _ := svc.Create(ctx, sampleJob())
	_, _ = svc.List(ctx)
	feed, _ := bus.Subscribe(ctx)

	deleted, err := svc.Delete(ctx, job.JobID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.JobID != job.JobID {
		t.Fatalf("deleted got=%s want=%s", deleted.JobID, job.JobID)
	}
	if c.has(cache.KeyJobsAll) {
		t.Fatalf("cache not invalidated on delete")
	}
	ev := <-feed
	if ev.Type != "job.deleted" {
		t.Fatalf("event got=%s", ev.Type)
	}
}
