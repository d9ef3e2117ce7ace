package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/crewmate-creator/internal/model"
	"github.com/yakoovad/crewmate-creator/internal/repository"
)

func crewmateWith(name string, speed int, color, ability string) interface{} {
	return mock.MatchedBy(func(c *repository.Crewmate) bool {
		return c.Name == name && c.Speed == speed && c.Color == color && c.SpecialAbility == ability
	})
}

func TestFormController_SubmitCreate(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name             string
		input            *model.CrewmateForm
		setupMocks       func(*MockCrewmateRepository)
		expectedError    bool
		errorCode        ErrorCode
		expectedState    model.ViewState
		expectedRedirect string
		expectedSpeed    model.Speed
	}{
		{
			name:  "fast blue teleporter",
			input: &model.CrewmateForm{Name: "Ada", Speed: "fast", Color: "Blue", SpecialAbility: "Teleportation"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Create", mock.Anything, crewmateWith("Ada", 3, "Blue", "Teleportation")).
					Return(&repository.Crewmate{ID: id, CreatedAt: testCreatedAt}, nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/crewmate/" + id.String(),
			expectedSpeed:    model.SpeedFast,
		},
		{
			name:  "name is trimmed",
			input: &model.CrewmateForm{Name: "  Ada \t", Speed: "normal", Color: "Red", SpecialAbility: "Healing"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Create", mock.Anything, crewmateWith("Ada", 2, "Red", "Healing")).
					Return(&repository.Crewmate{ID: id, CreatedAt: testCreatedAt}, nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/crewmate/" + id.String(),
			expectedSpeed:    model.SpeedNormal,
		},
		{
			name:  "unset speed defaults to slow",
			input: &model.CrewmateForm{Name: "Ada", Speed: ""},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Create", mock.Anything, crewmateWith("Ada", 1, "", "")).
					Return(&repository.Crewmate{ID: id, CreatedAt: testCreatedAt}, nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/crewmate/" + id.String(),
			expectedSpeed:    model.SpeedSlow,
		},
		{
			name:  "unlisted color is kept as text",
			input: &model.CrewmateForm{Name: "Ada", Speed: "lightning", Color: "Teal", SpecialAbility: "Flight"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Create", mock.Anything, crewmateWith("Ada", 4, "Teal", "Flight")).
					Return(&repository.Crewmate{ID: id, CreatedAt: testCreatedAt}, nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/crewmate/" + id.String(),
			expectedSpeed:    model.SpeedLightning,
		},
		{
			name:          "empty name",
			input:         &model.CrewmateForm{Name: "", Speed: "fast"},
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeValidation,
			expectedState: model.StateEditing,
		},
		{
			name:          "whitespace name",
			input:         &model.CrewmateForm{Name: " \n\t ", Speed: "fast"},
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeValidation,
			expectedState: model.StateEditing,
		},
		{
			name:  "store failure",
			input: &model.CrewmateForm{Name: "Ada", Speed: "fast"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeStore,
			expectedState: model.StateEditing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCrewmateRepository)
			tt.setupMocks(mockRepo)

			form := NewCrewmateService().WithCrewmateRepo(mockRepo).CreateForm()
			require.Equal(t, model.StateEditing, form.State())

			view, err := form.Submit(context.Background(), tt.input)

			if tt.expectedError {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
				assert.Empty(t, view.Redirect)
				assert.Nil(t, view.Crewmate)
				// the user's input survives the failure
				assert.Equal(t, tt.input, view.Form)
				assert.NotNil(t, view.Options)
			} else {
				require.Nil(t, err)
				require.NotNil(t, view.Crewmate)
				assert.Equal(t, id.String(), view.Crewmate.ID)
				assert.Equal(t, id.String(), view.ID)
				assert.Equal(t, tt.expectedSpeed, view.Crewmate.Speed)
				assert.Equal(t, testCreatedAt, view.Crewmate.CreatedAt)
			}
			assert.Equal(t, model.FormModeCreate, view.Mode)
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, tt.expectedState, form.State())
			assert.Equal(t, tt.expectedRedirect, view.Redirect)

			mockRepo.AssertExpectations(t)
			if tt.errorCode == ErrorCodeValidation {
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestFormController_SubmitAfterSuccess(t *testing.T) {
	mockRepo := new(MockCrewmateRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(&repository.Crewmate{ID: uuid.New(), CreatedAt: testCreatedAt}, nil).Once()

	form := NewCrewmateService().WithCrewmateRepo(mockRepo).CreateForm()

	_, err := form.Submit(context.Background(), &model.CrewmateForm{Name: "Ada"})
	require.Nil(t, err)

	_, err = form.Submit(context.Background(), &model.CrewmateForm{Name: "Ada"})
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeInvalidState, err.Code)

	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestFormController_RetryAfterFailure(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockCrewmateRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(&repository.Crewmate{ID: id, CreatedAt: testCreatedAt}, nil).Once()

	form := NewCrewmateService().WithCrewmateRepo(mockRepo).CreateForm()

	_, err := form.Submit(context.Background(), &model.CrewmateForm{Name: "Ada"})
	require.NotNil(t, err)
	assert.Equal(t, model.StateEditing, form.State())

	view, err := form.Submit(context.Background(), &model.CrewmateForm{Name: "Ada"})
	require.Nil(t, err)
	assert.Equal(t, model.StateSucceeded, view.State)
	assert.Equal(t, "/crewmate/"+id.String(), view.Redirect)
}

func TestCrewmateService_EditForm(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		id            string
		setupMocks    func(*MockCrewmateRepository)
		expectedError bool
		errorCode     ErrorCode
		expectedState model.ViewState
		expectedForm  *model.CrewmateForm
	}{
		{
			name: "pre-populated",
			id:   id.String(),
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Get", mock.Anything, id).Return(&repository.Crewmate{
					ID: id, Name: "Ada", Speed: 3, Color: "Blue", SpecialAbility: "Teleportation", CreatedAt: testCreatedAt,
				}, nil)
			},
			expectedState: model.StateEditing,
			expectedForm:  &model.CrewmateForm{Name: "Ada", Speed: "fast", Color: "Blue", SpecialAbility: "Teleportation"},
		},
		{
			name: "stored speed outside the options selects normal",
			id:   id.String(),
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Get", mock.Anything, id).Return(&repository.Crewmate{
					ID: id, Name: "Odd", Speed: 11, CreatedAt: testCreatedAt,
				}, nil)
			},
			expectedState: model.StateEditing,
			expectedForm:  &model.CrewmateForm{Name: "Odd", Speed: "normal"},
		},
		{
			name: "not found",
			id:   id.String(),
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Get", mock.Anything, id).Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
			expectedState: model.StateNotFound,
		},
		{
			name:          "malformed id",
			id:            "42",
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
			expectedState: model.StateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCrewmateRepository)
			tt.setupMocks(mockRepo)

			form, err := NewCrewmateService().WithCrewmateRepo(mockRepo).EditForm(context.Background(), tt.id)

			if tt.expectedError {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				require.Nil(t, err)
			}

			require.NotNil(t, form)
			view := form.View()
			assert.Equal(t, model.FormModeEdit, view.Mode)
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, tt.expectedForm, view.Form)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFormController_NotFoundFormRejectsSubmit(t *testing.T) {
	mockRepo := new(MockCrewmateRepository)
	mockRepo.On("Get", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	form, _ := NewCrewmateService().WithCrewmateRepo(mockRepo).EditForm(context.Background(), uuid.NewString())

	_, err := form.Submit(context.Background(), &model.CrewmateForm{Name: "Ada"})
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeInvalidState, err.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFormController_SubmitEdit(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name             string
		id               string
		input            *model.CrewmateForm
		setupMocks       func(*MockCrewmateRepository)
		expectedError    bool
		errorCode        ErrorCode
		expectedState    model.ViewState
		expectedRedirect string
	}{
		{
			name:  "lightning",
			id:    id.String(),
			input: &model.CrewmateForm{Name: "Ada", Speed: "lightning", Color: "Blue", SpecialAbility: "Teleportation"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Update", mock.Anything, mock.MatchedBy(func(c *repository.Crewmate) bool {
					return c.ID == id && c.Speed == 4 && c.Name == "Ada"
				})).Return(&repository.Crewmate{
					ID: id, Name: "Ada", Speed: 4, Color: "Blue", SpecialAbility: "Teleportation", CreatedAt: testCreatedAt,
				}, nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/crewmate/" + id.String(),
		},
		{
			name:          "blank name",
			id:            id.String(),
			input:         &model.CrewmateForm{Name: "   ", Speed: "lightning"},
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeValidation,
			expectedState: model.StateEditing,
		},
		{
			name:  "deleted meanwhile",
			id:    id.String(),
			input: &model.CrewmateForm{Name: "Ada", Speed: "fast"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Update", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
			expectedState: model.StateEditing,
		},
		{
			name:  "store failure",
			id:    id.String(),
			input: &model.CrewmateForm{Name: "Ada", Speed: "fast"},
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Update", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeStore,
			expectedState: model.StateEditing,
		},
		{
			name:          "malformed id",
			id:            "nope",
			input:         &model.CrewmateForm{Name: "Ada", Speed: "fast"},
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
			expectedState: model.StateEditing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCrewmateRepository)
			tt.setupMocks(mockRepo)

			form := NewCrewmateService().WithCrewmateRepo(mockRepo).ResumeEdit(tt.id)

			view, err := form.Submit(context.Background(), tt.input)

			if tt.expectedError {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				require.Nil(t, err)
				require.NotNil(t, view.Crewmate)
				assert.Equal(t, model.SpeedLightning, view.Crewmate.Speed)
				assert.Equal(t, "Lightning", view.Crewmate.Speed.Label())
				assert.Equal(t, testCreatedAt, view.Crewmate.CreatedAt)
			}
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, tt.expectedRedirect, view.Redirect)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFormController_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name             string
		id               string
		confirmed        bool
		setupMocks       func(*MockCrewmateRepository)
		expectedError    bool
		errorCode        ErrorCode
		expectedState    model.ViewState
		expectedRedirect string
	}{
		{
			name:      "confirmed",
			id:        id.String(),
			confirmed: true,
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Delete", mock.Anything, id).Return(nil)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/gallery",
		},
		{
			name:          "not confirmed",
			id:            id.String(),
			confirmed:     false,
			setupMocks:    func(cr *MockCrewmateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeConfirmationRequired,
			expectedState: model.StateEditing,
		},
		{
			name:      "already gone",
			id:        id.String(),
			confirmed: true,
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Delete", mock.Anything, id).Return(repository.ErrNotFound)
			},
			expectedState:    model.StateSucceeded,
			expectedRedirect: "/gallery",
		},
		{
			name:      "store failure stays on edit",
			id:        id.String(),
			confirmed: true,
			setupMocks: func(cr *MockCrewmateRepository) {
				cr.On("Delete", mock.Anything, id).Return(errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeStore,
			expectedState: model.StateEditing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCrewmateRepository)
			tt.setupMocks(mockRepo)

			form := NewCrewmateService().WithCrewmateRepo(mockRepo).ResumeEdit(tt.id)

			view, err := form.Delete(context.Background(), tt.confirmed)

			if tt.expectedError {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				require.Nil(t, err)
			}
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, tt.expectedRedirect, view.Redirect)

			mockRepo.AssertExpectations(t)
			if !tt.confirmed {
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestFormController_DeleteOnCreateForm(t *testing.T) {
	mockRepo := new(MockCrewmateRepository)
	form := NewCrewmateService().WithCrewmateRepo(mockRepo).CreateForm()

	_, err := form.Delete(context.Background(), true)
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeInvalidState, err.Code)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
