package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/yakoovad/crewmate-creator/internal/model"
	"github.com/yakoovad/crewmate-creator/internal/service"
)

type crewmateIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type crewmateFormRequest struct {
	ID             string `param:"id" json:"-" validate:"omitempty,uuid"`
	Name           string `json:"name"`
	Speed          string `json:"speed"`
	Color          string `json:"color"`
	SpecialAbility string `json:"special_ability"`
}

func (r *crewmateFormRequest) form() *model.CrewmateForm {
	return &model.CrewmateForm{
		Name:           r.Name,
		Speed:          r.Speed,
		Color:          r.Color,
		SpecialAbility: r.SpecialAbility,
	}
}

type deleteRequest struct {
	ID      string `param:"id" validate:"required,uuid"`
	Confirm bool   `query:"confirm"`
}

func decodeRequest[T any](e echo.Context, req *T) *service.Error {
	err := ProcessRequest(e, req, bindRequest[T], validateRequest[T])
	if err == nil {
		return nil
	}

	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return service.NewError(service.ErrorCodeInvalidBody, err.Error())
}

func bindRequest[T any](e echo.Context, req *T) error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}
	return nil
}

// validateRequest reports a malformed id as not found: such a record can
// never have been created.
func validateRequest[T any](e echo.Context, req *T) error {
	err := e.Validate(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "ID" {
				return service.NewError(service.ErrorCodeNotFound, "crewmate not found")
			}
		}
	}
	return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
}
