package services

import (
	"context"
	"errors"

	"github.com/Prince260602/internhubs/internal/models"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sectionOps are the writes for one validated section document.
type sectionOps struct {
	insert  func(ctx context.Context) (primitive.ObjectID, error)
	// replace overwrites id and returns a func that puts the old document back.
	replace func(ctx context.Context, id primitive.ObjectID) (func(context.Context) error, error)
	delete  func(ctx context.Context, id primitive.ObjectID) error
}

func bindSection[T any](repo mongorepo.SectionRepository[T], doc *T) sectionOps {
	return sectionOps{
		insert: func(ctx context.Context) (primitive.ObjectID, error) {
			return repo.Insert(ctx, doc)
		},
		replace: func(ctx context.Context, id primitive.ObjectID) (func(context.Context) error, error) {
			prev, err := repo.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			if err := repo.Replace(ctx, id, doc); err != nil {
				return nil, err
			}
			return func(ctx context.Context) error { return repo.Replace(ctx, id, prev) }, nil
		},
		delete: repo.Delete,
	}
}

func (s *profileService) bind(sec models.Section, in models.ProfileSections) sectionOps {
	switch sec {
	case models.SectionPersonal:
		return bindSection(s.sections.Personal, in.Personal)
	case models.SectionEducation:
		return bindSection(s.sections.Education, in.Education)
	case models.SectionWork:
		return bindSection(s.sections.Work, in.Work)
	case models.SectionSocial:
		return bindSection(s.sections.Social, in.Social)
	case models.SectionSkillset:
		return bindSection(s.sections.Skillset, in.Skillset)
	}
	err := utils.E(utils.CodeInternal, "ProfileService.bind", "unknown section "+string(sec), nil)
	return sectionOps{
		insert: func(context.Context) (primitive.ObjectID, error) {
			return primitive.NilObjectID, err
		},
		replace: func(context.Context, primitive.ObjectID) (func(context.Context) error, error) {
			return nil, err
		},
		delete: func(context.Context, primitive.ObjectID) error { return nil },
	}
}

type undoStep struct {
	step string
	fn   func(context.Context) error
}

type undoFailure struct {
	step string
	err  error
}

// undoLog records compensating actions for writes that already succeeded.
type undoLog struct {
	steps []undoStep
}

func (u *undoLog) push(step models.Section, fn func(context.Context) error) {
	u.steps = append(u.steps, undoStep{step: string(step), fn: fn})
}

func (u *undoLog) reset()      { u.steps = u.steps[:0] }
func (u *undoLog) empty() bool { return len(u.steps) == 0 }

// run applies the steps newest first and keeps going past failures.
func (u *undoLog) run(ctx context.Context) []undoFailure {
	var failed []undoFailure
	for i := len(u.steps) - 1; i >= 0; i-- {
		st := u.steps[i]
		if err := st.fn(ctx); err != nil && !errors.Is(err, utils.ErrNotFound) {
			failed = append(failed, undoFailure{step: st.step, err: err})
		}
	}
	u.steps = nil
	return failed
}
