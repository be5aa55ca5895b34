package services

import (
	"context"
	"errors"

	"github.com/Prince260602/internhubs/internal/models"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/Prince260602/internhubs/internal/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	msgProfileExists   = "Profile already created"
	msgProfileNotFound = "Profile not created"
)

// ProfileService owns the profile aggregate: one parent record per user
// referencing five sub-documents.
type ProfileService interface {
	Create(ctx context.Context, userID string, p validation.Payload) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.ProfileAggregate, error)
	Update(ctx context.Context, userID string, p validation.Payload) (*models.ProfileAggregate, error)
}

type profileService struct {
	users    mongorepo.UserRepository
	profiles mongorepo.ProfileRepository
	sections mongorepo.SectionRepos
	tx       mongorepo.TxRunner
	gateway  *validation.Gateway
	log      *logrus.Logger
}

func NewProfileService(
	users mongorepo.UserRepository,
	profiles mongorepo.ProfileRepository,
	sections mongorepo.SectionRepos,
	tx mongorepo.TxRunner,
	gateway *validation.Gateway,
	log *logrus.Logger,
) ProfileService {
	return &profileService{
		users:    users,
		profiles: profiles,
		sections: sections,
		tx:       tx,
		gateway:  gateway,
		log:      log,
	}
}

func (s *profileService) Create(ctx context.Context, userID string, p validation.Payload) (*models.Profile, error) {
	const op = "ProfileService.Create"

	user, err := resolveUser(ctx, s.users, op, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.profiles.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		return nil, utils.E(utils.CodeProfileExists, op, msgProfileExists, nil)
	case !errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeInternal, op, "failed to look up profile", err)
	}

	// Every section must pass before anything is written.
	secs, err := s.gateway.ValidateAll(p)
	if err != nil {
		return nil, err
	}

	var out *models.Profile
	var undo undoLog
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		undo.reset()
		profile := &models.Profile{UserID: user.ID}

		for _, sec := range models.SectionOrder {
			ops := s.bind(sec, secs)
			id, err := ops.insert(ctx)
			if err != nil {
				return utils.E(utils.CodeInternal, op, "failed to save "+sec.Label(), err)
			}
			undo.push(sec, func(ctx context.Context) error { return ops.delete(ctx, id) })
			profile.SetRef(sec, id)
			s.log.WithFields(logrus.Fields{"op": op, "section": sec, "id": id.Hex()}).Debug("section saved")
		}

		if err := s.profiles.Create(ctx, profile); err != nil {
			if errors.Is(err, utils.ErrDuplicate) {
				return utils.E(utils.CodeProfileExists, op, msgProfileExists, nil)
			}
			return utils.E(utils.CodeInternal, op, "failed to save profile", err)
		}
		out = profile
		return nil
	})
	if err != nil {
		s.compensate(ctx, op, &undo)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"op": op, "user_id": userID, "profile_id": out.ID.Hex()}).Info("profile created")
	return out, nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.ProfileAggregate, error) {
	const op = "ProfileService.Get"

	user, err := resolveUser(ctx, s.users, op, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileOf(ctx, op, user.ID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, op, profile)
}

// Update replaces the sections present in p in place and leaves the others
// untouched. A payload carrying all five sections is validated against every
// schema and replaces every section, the same as a full update. A reference
// that no longer resolves gets a fresh sub-document.
func (s *profileService) Update(ctx context.Context, userID string, p validation.Payload) (*models.ProfileAggregate, error) {
	const op = "ProfileService.Update"

	user, err := resolveUser(ctx, s.users, op, userID)
	if err != nil {
		return nil, err
	}
	current, err := s.profileOf(ctx, op, user.ID)
	if err != nil {
		return nil, err
	}

	secs, err := s.gateway.ValidatePresent(p)
	if err != nil {
		return nil, err
	}

	var undo undoLog
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		undo.reset()
		profile := *current

		for _, sec := range secs.Present() {
			ops := s.bind(sec, secs)
			ref := profile.Ref(sec)

			if !ref.IsZero() {
				restore, err := ops.replace(ctx, ref)
				if err == nil {
					undo.push(sec, restore)
					s.log.WithFields(logrus.Fields{"op": op, "section": sec, "id": ref.Hex()}).Debug("section replaced")
					continue
				}
				if !errors.Is(err, utils.ErrNotFound) {
					return utils.E(utils.CodeInternal, op, "failed to update "+sec.Label(), err)
				}
			}

			id, err := ops.insert(ctx)
			if err != nil {
				return utils.E(utils.CodeInternal, op, "failed to save "+sec.Label(), err)
			}
			undo.push(sec, func(ctx context.Context) error { return ops.delete(ctx, id) })
			profile.SetRef(sec, id)
		}

		if err := s.profiles.UpdateRefs(ctx, &profile); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to update profile", err)
		}
		prev := *current
		undo.push("profile", func(ctx context.Context) error { return s.profiles.UpdateRefs(ctx, &prev) })
		*current = profile
		return nil
	})
	if err != nil {
		s.compensate(ctx, op, &undo)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"op":       op,
		"user_id":  userID,
		"sections": secs.Present(),
	}).Info("profile updated")
	return s.aggregate(ctx, op, current)
}

func (s *profileService) profileOf(ctx context.Context, op string, userID primitive.ObjectID) (*models.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeProfileNotFound, op, msgProfileNotFound, nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up profile", err)
	}
	return p, nil
}

// aggregate resolves the five references concurrently. Dangling references
// are reported in Missing rather than failing the read.
func (s *profileService) aggregate(ctx context.Context, op string, p *models.Profile) (*models.ProfileAggregate, error) {
	var (
		secs    models.ProfileSections
		missing [5]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(i int, sec models.Section, get func(context.Context, primitive.ObjectID) error) {
		ref := p.Ref(sec)
		if ref.IsZero() {
			missing[i] = true
			return
		}
		g.Go(func() error {
			err := get(gctx, ref)
			if errors.Is(err, utils.ErrNotFound) {
				missing[i] = true
				return nil
			}
			if err != nil {
				return utils.E(utils.CodeInternal, op, "failed to load "+sec.Label(), err)
			}
			return nil
		})
	}

	fetch(0, models.SectionPersonal, func(ctx context.Context, id primitive.ObjectID) (err error) {
		secs.Personal, err = s.sections.Personal.Get(ctx, id)
		return err
	})
	fetch(1, models.SectionEducation, func(ctx context.Context, id primitive.ObjectID) (err error) {
		secs.Education, err = s.sections.Education.Get(ctx, id)
		return err
	})
	fetch(2, models.SectionWork, func(ctx context.Context, id primitive.ObjectID) (err error) {
		secs.Work, err = s.sections.Work.Get(ctx, id)
		return err
	})
	fetch(3, models.SectionSocial, func(ctx context.Context, id primitive.ObjectID) (err error) {
		secs.Social, err = s.sections.Social.Get(ctx, id)
		return err
	})
	fetch(4, models.SectionSkillset, func(ctx context.Context, id primitive.ObjectID) (err error) {
		secs.Skillset, err = s.sections.Skillset.Get(ctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := &models.ProfileAggregate{Profile: p, Sections: secs}
	for i, sec := range models.SectionOrder {
		if missing[i] {
			agg.Missing = append(agg.Missing, sec)
		}
	}
	agg.Complete = len(agg.Missing) == 0
	return agg, nil
}

// compensate rolls back a failed non-atomic unit.
func (s *profileService) compensate(ctx context.Context, op string, undo *undoLog) {
	if s.tx.Atomic() || undo.empty() {
		return
	}
	s.log.WithFields(logrus.Fields{"op": op, "steps": len(undo.steps)}).Warn("rolling back partial profile write")
	for _, f := range undo.run(context.WithoutCancel(ctx)) {
		s.log.WithFields(logrus.Fields{"op": op, "step": f.step}).WithError(f.err).Error("compensation failed")
	}
}
