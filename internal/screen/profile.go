package screen

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/mutation"
	"github.com/saadjs/nutri-cli/internal/view"
)

type ProfileAPI interface {
	Profile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	AddWeight(ctx context.Context, weight float64) (model.WeightEntry, error)
	WeightHistory(ctx context.Context) ([]model.WeightEntry, error)
}

type Profile struct {
	base
	api     ProfileAPI
	tracker *mutation.Tracker
	profile model.Profile
	has     bool
	history []model.WeightEntry
}

func NewProfile(a ProfileAPI, log *slog.Logger) *Profile {
	return &Profile{base: newBase(log), api: a, tracker: mutation.NewTracker()}
}

// Load fetches the profile and the weight history together. A side that
// fails is shown as empty; only an authentication failure fails the load.
func (s *Profile) Load(ctx context.Context) error {
	s.loading()

	var (
		p       model.Profile
		has     bool
		history []model.WeightEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		got, err := s.api.Profile(gctx)
		switch {
		case err == nil:
			p, has = got, true
		case api.IsUnauthorized(err):
			return err
		case !api.IsNotFound(err):
			s.log.WarnContext(ctx, "screen: profile unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		got, err := s.api.WeightHistory(gctx)
		switch {
		case err == nil:
			history = got
		case api.IsUnauthorized(err):
			return err
		default:
			s.log.WarnContext(ctx, "screen: weight history unavailable", "error", err)
		}
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle(err)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	s.profile, s.has, s.history = p, has, history
	return nil
}

func (s *Profile) reload(ctx context.Context) error {
	s.log.InfoContext(ctx, "screen: reload after failed mutation", "screen", "profile")
	return s.Load(ctx)
}

// Current returns the cached profile; ok is false when none exists yet.
func (s *Profile) Current() (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.has
}

func (s *Profile) History() []model.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WeightEntry(nil), s.history...)
}

func (s *Profile) Series() []view.Point {
	return view.WeightSeries(s.History())
}

type savedProfile struct {
	profile model.Profile
	entry   model.WeightEntry
}

// Save replaces the profile, then records its weight as a new sample.
func (s *Profile) Save(ctx context.Context, p model.Profile) (model.Profile, error) {
	if err := p.Validate(); err != nil {
		return model.Profile{}, err
	}
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[savedProfile]{
		Key: "profile",
		Apply: func() {
			s.mu.Lock()
			s.profile, s.has = p, true
			s.mu.Unlock()
		},
		Call: func(ctx context.Context) (savedProfile, error) {
			saved, err := s.api.UpdateProfile(ctx, p)
			if err != nil {
				return savedProfile{}, err
			}
			entry, err := s.api.AddWeight(ctx, saved.Weight)
			if err != nil {
				return savedProfile{}, fmt.Errorf("record weight: %w", err)
			}
			return savedProfile{profile: saved, entry: entry}, nil
		},
		Reconcile: func(sp savedProfile) {
			s.mu.Lock()
			s.profile, s.has = sp.profile, true
			s.history = append(s.history, sp.entry)
			s.mu.Unlock()
		},
		Reload: s.reload,
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return out.profile, nil
}

// AddWeight records a weigh-in and mirrors it into the cached profile.
func (s *Profile) AddWeight(ctx context.Context, weight float64) (model.WeightEntry, error) {
	if weight <= 0 {
		return model.WeightEntry{}, fmt.Errorf("weight must be > 0")
	}
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.WeightEntry]{
		Key: "profile",
		Call: func(ctx context.Context) (model.WeightEntry, error) {
			return s.api.AddWeight(ctx, weight)
		},
		Reconcile: func(e model.WeightEntry) {
			s.mu.Lock()
			s.history = append(s.history, e)
			if s.has {
				s.profile.Weight = e.Weight
			}
			s.mu.Unlock()
		},
		Reload: s.reload,
	})
	if err != nil {
		return model.WeightEntry{}, fmt.Errorf("add weight: %w", err)
	}
	return out, nil
}
