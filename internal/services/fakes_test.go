package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Prince260602/internhubs/internal/models"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errBoom = errors.New("boom")

type fakeUsers struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.User
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[primitive.ObjectID]*models.User{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.byID {
		if x.EmailID == u.EmailID {
			return utils.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.EmailID == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeUsers) SetResumeLink(_ context.Context, id primitive.ObjectID, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.ResumeLink = link
	return nil
}

type fakeProfiles struct {
	mu         sync.Mutex
	byUser     map[primitive.ObjectID]models.Profile
	failCreate error
	failUpdate error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byUser: map[primitive.ObjectID]models.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	if _, ok := f.byUser[p.UserID]; ok {
		return utils.ErrDuplicate
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.byUser[p.UserID] = *p
	return nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) UpdateRefs(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	if _, ok := f.byUser[p.UserID]; !ok {
		return utils.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	f.byUser[p.UserID] = *p
	return nil
}

func (f *fakeProfiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUser)
}

// fakeSection is an in-memory sub-document collection.
type fakeSection[T any] struct {
	mu          sync.Mutex
	docs        map[primitive.ObjectID]T
	failInsert  error
	failReplace error
}

func newFakeSection[T any]() *fakeSection[T] {
	return &fakeSection[T]{docs: map[primitive.ObjectID]T{}}
}

func (f *fakeSection[T]) Insert(_ context.Context, doc *T) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert != nil {
		return primitive.NilObjectID, f.failInsert
	}
	id := primitive.NewObjectID()
	f.docs[id] = *doc
	return id, nil
}

func (f *fakeSection[T]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &d, nil
}

func (f *fakeSection[T]) Replace(_ context.Context, id primitive.ObjectID, doc *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReplace != nil {
		return f.failReplace
	}
	if _, ok := f.docs[id]; !ok {
		return utils.ErrNotFound
	}
	f.docs[id] = *doc
	return nil
}

func (f *fakeSection[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeSection[T]) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

type fakeSections struct {
	personal  *fakeSection[models.PersonalDetails]
	education *fakeSection[models.EducationalDetails]
	work      *fakeSection[models.WorkExperienceDetails]
	social    *fakeSection[models.SocialMediaLinks]
	skillset  *fakeSection[models.Skillset]
}

func newFakeSections() *fakeSections {
	return &fakeSections{
		personal:  newFakeSection[models.PersonalDetails](),
		education: newFakeSection[models.EducationalDetails](),
		work:      newFakeSection[models.WorkExperienceDetails](),
		social:    newFakeSection[models.SocialMediaLinks](),
		skillset:  newFakeSection[models.Skillset](),
	}
}

func (f *fakeSections) repos() mongorepo.SectionRepos {
	return mongorepo.SectionRepos{
		Personal:  f.personal,
		Education: f.education,
		Work:      f.work,
		Social:    f.social,
		Skillset:  f.skillset,
	}
}

func (f *fakeSections) total() int {
	return f.personal.count() + f.education.count() + f.work.count() + f.social.count() + f.skillset.count()
}

// atomicTx stands in for a transactional runner.
type atomicTx struct{}

func (atomicTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (atomicTx) Atomic() bool                                                           { return true }
