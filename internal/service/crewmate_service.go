package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yakoovad/crewmate-creator/internal/model"
	"github.com/yakoovad/crewmate-creator/internal/repository"
	"github.com/yakoovad/crewmate-creator/pkg/logger"
	"go.uber.org/zap"
)

// CrewmateService serves the read views and hands out form controllers.
// All state lives in the store; the service itself is stateless.
type CrewmateService struct {
	crewmates repository.CrewmateRepository

	now func() time.Time
}

func NewCrewmateService() *CrewmateService {
	return &CrewmateService{now: time.Now}
}

func (s *CrewmateService) WithCrewmateRepo(r repository.CrewmateRepository) *CrewmateService {
	s.crewmates = r
	return s
}

// WithClock sets the wall clock used for derived values such as days active.
func (s *CrewmateService) WithClock(now func() time.Time) *CrewmateService {
	s.now = now
	return s
}

func (s *CrewmateService) Options() *model.Options {
	return model.LookupOptions()
}

// Gallery lists every crewmate, newest first.
func (s *CrewmateService) Gallery(ctx context.Context) (*model.GalleryView, *Error) {
	l := logger.FromContext(ctx)

	m := model.NewStateMachine(model.StateIdle)
	_ = m.Transition(model.StateLoading)

	records, err := s.crewmates.List(ctx)
	if err != nil {
		l.Error("failed to list crewmates", zap.Error(err))
		_ = m.Transition(model.StateFailed)
		return &model.GalleryView{
			State:     m.State(),
			Crewmates: []*model.CrewmateSummary{},
			CreateURL: model.CreatePath,
		}, NewError(ErrorCodeStore, "failed to load crewmates")
	}

	crewmates := make([]*model.Crewmate, 0, len(records))
	for _, r := range records {
		crewmates = append(crewmates, toModel(r))
	}

	view := model.NewGalleryView(crewmates)
	_ = m.Transition(view.State)

	l.Debug("crewmates listed", zap.Int("count", view.Count))

	return view, nil
}

// Detail loads one crewmate and derives its display values. A missing row and
// a failed lookup both render as not found; the error code tells them apart.
func (s *CrewmateService) Detail(ctx context.Context, id string) (*model.DetailView, *Error) {
	m := model.NewStateMachine(model.StateIdle)
	_ = m.Transition(model.StateLoading)

	record, err := s.get(ctx, id)
	if err != nil {
		_ = m.Transition(model.StateNotFound)
		return model.NewNotFoundDetailView(), err
	}

	_ = m.Transition(model.StateLoaded)
	return model.NewDetailView(toModel(record), s.now()), nil
}

func (s *CrewmateService) get(ctx context.Context, id string) (*repository.Crewmate, *Error) {
	l := logger.FromContext(ctx)

	uid, err := uuid.Parse(id)
	if err != nil {
		l.Warn("malformed crewmate id", zap.String("crewmate_id", id))
		return nil, NewError(ErrorCodeNotFound, "crewmate not found")
	}

	record, err := s.crewmates.Get(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("crewmate not found", zap.String("crewmate_id", id))
		return nil, NewError(ErrorCodeNotFound, "crewmate not found")
	}
	if err != nil {
		l.Error("failed to get crewmate", zap.String("crewmate_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeStore, "failed to load crewmate")
	}
	return record, nil
}

func toModel(r *repository.Crewmate) *model.Crewmate {
	return &model.Crewmate{
		ID:             r.ID.String(),
		Name:           r.Name,
		Speed:          model.Speed(r.Speed),
		Color:          r.Color,
		SpecialAbility: r.SpecialAbility,
		CreatedAt:      r.CreatedAt,
	}
}
