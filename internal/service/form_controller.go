package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yakoovad/crewmate-creator/internal/model"
	"github.com/yakoovad/crewmate-creator/internal/repository"
	"github.com/yakoovad/crewmate-creator/pkg/logger"
	"go.uber.org/zap"
)

const (
	msgNameRequired    = "please enter a name for your crewmate"
	msgConfirmDelete   = "deleting a crewmate cannot be undone; confirm to continue"
	msgFormNotEditable = "form is not accepting changes"
)

// FormController drives one create or edit session:
//
//	create: editing -> submitting -> succeeded | failed -> editing
//	edit:   loading -> editing | not_found, then as create
//
// Navigation targets are only set after the store acknowledged the write.
type FormController struct {
	mode    model.FormMode
	id      string
	machine *model.StateMachine

	form     *model.CrewmateForm
	saved    *model.Crewmate
	redirect string

	crewmates repository.CrewmateRepository
}

// CreateForm starts an empty create session.
func (s *CrewmateService) CreateForm() *FormController {
	return &FormController{
		mode:      model.FormModeCreate,
		machine:   model.NewStateMachine(model.StateEditing),
		form:      &model.CrewmateForm{},
		crewmates: s.crewmates,
	}
}

// EditForm loads the record and pre-populates the form. The returned
// controller is in not_found when the record cannot be loaded.
func (s *CrewmateService) EditForm(ctx context.Context, id string) (*FormController, *Error) {
	f := &FormController{
		mode:      model.FormModeEdit,
		id:        id,
		machine:   model.NewStateMachine(model.StateIdle),
		crewmates: s.crewmates,
	}
	_ = f.machine.Transition(model.StateLoading)

	record, err := s.get(ctx, id)
	if err != nil {
		_ = f.machine.Transition(model.StateNotFound)
		return f, err
	}

	f.form = model.FormFromCrewmate(toModel(record))
	_ = f.machine.Transition(model.StateEditing)
	return f, nil
}

// ResumeEdit continues an edit session whose form the client already holds,
// so submit and delete do not pay for another read.
func (s *CrewmateService) ResumeEdit(id string) *FormController {
	return &FormController{
		mode:      model.FormModeEdit,
		id:        id,
		machine:   model.NewStateMachine(model.StateEditing),
		crewmates: s.crewmates,
	}
}

func (f *FormController) State() model.ViewState {
	return f.machine.State()
}

func (f *FormController) View() *model.FormView {
	v := &model.FormView{
		Mode:     f.mode,
		State:    f.machine.State(),
		ID:       f.id,
		Form:     f.form,
		Crewmate: f.saved,
		Redirect: f.redirect,
	}
	if v.State == model.StateEditing {
		v.Options = model.LookupOptions()
	}
	return v
}

// Submit validates and saves the form. A blank name is rejected without
// touching the store and leaves the form editing.
func (f *FormController) Submit(ctx context.Context, input *model.CrewmateForm) (*model.FormView, *Error) {
	l := logger.FromContext(ctx).With(zap.String("mode", string(f.mode)), zap.String("crewmate_id", f.id))

	if f.machine.State() != model.StateEditing {
		return f.View(), NewError(ErrorCodeInvalidState, msgFormNotEditable)
	}

	form := *input
	f.form = &form

	name := strings.TrimSpace(input.Name)
	if name == "" {
		l.Info("rejected crewmate without a name")
		return f.View(), NewError(ErrorCodeValidation, msgNameRequired)
	}

	_ = f.machine.Transition(model.StateSubmitting)

	record := &repository.Crewmate{
		Name:           name,
		Speed:          int(model.SpeedFromOption(input.Speed)),
		Color:          input.Color,
		SpecialAbility: input.SpecialAbility,
	}

	var (
		saved *repository.Crewmate
		err   error
	)
	switch f.mode {
	case model.FormModeCreate:
		err = f.crewmates.Create(ctx, record)
		saved = record
	case model.FormModeEdit:
		record.ID, err = uuid.Parse(f.id)
		if err != nil {
			err = repository.ErrNotFound
			break
		}
		saved, err = f.crewmates.Update(ctx, record)
	}

	if err != nil {
		f.fail()
		if errors.Is(err, repository.ErrNotFound) {
			l.Warn("crewmate not found")
			return f.View(), NewError(ErrorCodeNotFound, "crewmate not found")
		}
		l.Error("failed to save crewmate", zap.Error(err))
		return f.View(), NewError(ErrorCodeStore, "failed to save crewmate, please try again")
	}

	_ = f.machine.Transition(model.StateSucceeded)
	f.saved = toModel(saved)
	f.id = f.saved.ID
	f.redirect = model.DetailPath(f.id)

	l.Info("crewmate saved", zap.String("saved_id", f.id), zap.Int("speed", saved.Speed))

	return f.View(), nil
}

// Delete removes the record being edited once the user has confirmed.
// Deleting a record that is already gone counts as success.
func (f *FormController) Delete(ctx context.Context, confirmed bool) (*model.FormView, *Error) {
	l := logger.FromContext(ctx).With(zap.String("crewmate_id", f.id))

	if f.mode != model.FormModeEdit || f.machine.State() != model.StateEditing {
		return f.View(), NewError(ErrorCodeInvalidState, msgFormNotEditable)
	}

	if !confirmed {
		return f.View(), NewError(ErrorCodeConfirmationRequired, msgConfirmDelete)
	}

	_ = f.machine.Transition(model.StateSubmitting)

	id, err := uuid.Parse(f.id)
	if err == nil {
		err = f.crewmates.Delete(ctx, id)
	} else {
		err = repository.ErrNotFound
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		l.Warn("crewmate already gone")
	case err != nil:
		l.Error("failed to delete crewmate", zap.Error(err))
		f.fail()
		return f.View(), NewError(ErrorCodeStore, "failed to delete crewmate, please try again")
	}

	_ = f.machine.Transition(model.StateSucceeded)
	f.redirect = model.GalleryPath

	l.Info("crewmate deleted")

	return f.View(), nil
}

// fail records the failure and reopens the form with the user's input intact.
func (f *FormController) fail() {
	_ = f.machine.Transition(model.StateFailed)
	_ = f.machine.Transition(model.StateEditing)
}
