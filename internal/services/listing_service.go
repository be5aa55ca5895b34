package services

import (
	"context"
	"errors"
	"time"

	"github.com/Prince260602/internhubs/internal/cache"
	"github.com/Prince260602/internhubs/internal/events"
	"github.com/Prince260602/internhubs/internal/models"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ListingService manages one listing type (jobs or internships). Reads go
// through the cache; every write invalidates it and publishes an event.
type ListingService[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, set map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type listingPtr[T any] interface {
	*T
	models.Listing
}

type ListingOptions struct {
	CacheTTL time.Duration
	Limit    int64 // caps list reads; zero lists everything
}

type listingService[T any, PT listingPtr[T]] struct {
	kind     string // job | internship
	label    string
	cacheKey string

	repo  mongorepo.ListingRepository[T]
	cache cache.Cache
	pub   events.Publisher
	opts  ListingOptions
	log   *logrus.Logger
	now   func() time.Time
}

func NewJobService(repo mongorepo.ListingRepository[models.Job], c cache.Cache, pub events.Publisher, opts ListingOptions, log *logrus.Logger) ListingService[models.Job] {
	return &listingService[models.Job, *models.Job]{
		kind: "job", label: "Job", cacheKey: cache.KeyJobsAll,
		repo: repo, cache: c, pub: pub, opts: opts, log: log, now: time.Now,
	}
}

func NewInternshipService(repo mongorepo.ListingRepository[models.Internship], c cache.Cache, pub events.Publisher, opts ListingOptions, log *logrus.Logger) ListingService[models.Internship] {
	return &listingService[models.Internship, *models.Internship]{
		kind: "internship", label: "Internship", cacheKey: cache.KeyInternshipsAll,
		repo: repo, cache: c, pub: pub, opts: opts, log: log, now: time.Now,
	}
}

func (s *listingService[T, PT]) Create(ctx context.Context, doc *T) (*T, error) {
	op := s.label + "Service.Create"

	if doc == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, s.label+" is required", nil)
	}
	PT(doc).Stamp(uuid.NewString(), s.now().UTC())

	if err := s.repo.Insert(ctx, doc); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, s.label+" already exists", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create "+s.kind, err)
	}

	s.changed(ctx, "created", PT(doc).PublicID())
	return doc, nil
}

func (s *listingService[T, PT]) List(ctx context.Context) ([]T, error) {
	op := s.label + "Service.List"

	var cached []T
	hit, err := s.cache.GetJSON(ctx, s.cacheKey, &cached)
	if err != nil {
		s.log.WithError(err).WithField("key", s.cacheKey).Warn("listing cache read failed")
	}
	if hit {
		return cached, nil
	}

	out, err := s.repo.List(ctx, s.opts.Limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list "+s.kind+"s", err)
	}

	// A write landing between the read above and this store can leave a
	// stale list cached until CacheTTL expires.
	if s.opts.CacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, s.cacheKey, out, s.opts.CacheTTL); err != nil {
			s.log.WithError(err).WithField("key", s.cacheKey).Warn("listing cache write failed")
		}
	}
	return out, nil
}

func (s *listingService[T, PT]) Update(ctx context.Context, id string, set map[string]any) (*T, error) {
	op := s.label + "Service.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if len(set) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no fields to update", nil)
	}
	set["updated_at"] = s.now().UTC()

	out, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, s.label+" not found", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update "+s.kind, err)
	}

	s.changed(ctx, "updated", PT(out).PublicID())
	return out, nil
}

func (s *listingService[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	op := s.label + "Service.Delete"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	out, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, s.label+" not found", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to delete "+s.kind, err)
	}

	s.changed(ctx, "deleted", PT(out).PublicID())
	return out, nil
}

// changed drops the cached list and tells live subscribers. Neither step can
// fail the write that already happened.
func (s *listingService[T, PT]) changed(ctx context.Context, verb, id string) {
	if err := s.cache.Del(ctx, s.cacheKey); err != nil {
		s.log.WithError(err).WithField("key", s.cacheKey).Warn("listing cache invalidation failed")
	}
	ev := models.ListingEvent{Type: s.kind + "." + verb, ID: id, At: s.now().UTC()}
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithField("event", ev.Type).Warn("listing event publish failed")
	}
}
