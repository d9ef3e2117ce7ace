package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yakoovad/crewmate-creator/internal/model"
	"github.com/yakoovad/crewmate-creator/internal/service"
	"github.com/yakoovad/crewmate-creator/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	crewmates *service.CrewmateService

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithCrewmateService(crewmates *service.CrewmateService) *Handler {
	h.crewmates = crewmates
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = h.httpErrorHandler
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	g := e.Group("/api")

	g.GET("", h.Home)
	g.GET("/options", h.GetOptions)

	g.GET("/crewmates", h.ListCrewmates)
	g.POST("/crewmates", h.CreateCrewmate)
	g.GET("/crewmates/:id", h.GetCrewmate)
	g.GET("/crewmates/:id/edit", h.EditCrewmate)
	g.PUT("/crewmates/:id", h.UpdateCrewmate)
	g.DELETE("/crewmates/:id", h.DeleteCrewmate)
}

func (h *Handler) Home(e echo.Context) error {
	return e.JSON(http.StatusOK, model.NewHomeView())
}

func (h *Handler) GetOptions(e echo.Context) error {
	return e.JSON(http.StatusOK, h.crewmates.Options())
}

func (h *Handler) ListCrewmates(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	l.Info("listing crewmates")

	view, err := h.crewmates.Gallery(e.Request().Context())
	if err != nil {
		l.Error("failed to list crewmates", zap.Any("error", err))
		return h.transportError(e, err, view)
	}

	return e.JSON(http.StatusOK, view)
}

func (h *Handler) GetCrewmate(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req crewmateIDRequest

	if err := decodeRequest(e, &req); err != nil {
		l.Warn("invalid request", zap.Any("error", err))
		return h.transportError(e, err, model.NewNotFoundDetailView())
	}

	l.Info("getting crewmate", zap.String("crewmate_id", req.ID))

	view, err := h.crewmates.Detail(e.Request().Context(), req.ID)
	if err != nil {
		l.Error("failed to get crewmate", zap.String("crewmate_id", req.ID), zap.Any("error", err))
		return h.transportError(e, err, view)
	}

	return e.JSON(http.StatusOK, view)
}

func (h *Handler) CreateCrewmate(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	form := h.crewmates.CreateForm()

	var req crewmateFormRequest

	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err, form.View())
	}

	l.Info("creating crewmate", zap.String("name", req.Name), zap.String("speed", req.Speed))

	view, err := form.Submit(e.Request().Context(), req.form())
	if err != nil {
		l.Error("failed to create crewmate", zap.String("name", req.Name), zap.Any("error", err))
		return h.transportError(e, err, view)
	}

	return e.JSON(http.StatusCreated, view)
}

func (h *Handler) EditCrewmate(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req crewmateIDRequest

	if err := decodeRequest(e, &req); err != nil {
		l.Warn("invalid request", zap.Any("error", err))
		return h.transportError(e, err, &model.FormView{
			Mode:  model.FormModeEdit,
			State: model.StateNotFound,
			ID:    e.Param("id"),
		})
	}

	l.Info("loading crewmate for edit", zap.String("crewmate_id", req.ID))

	form, err := h.crewmates.EditForm(e.Request().Context(), req.ID)
	if err != nil {
		l.Error("failed to load crewmate for edit", zap.String("crewmate_id", req.ID), zap.Any("error", err))
		return h.transportError(e, err, form.View())
	}

	return e.JSON(http.StatusOK, form.View())
}

func (h *Handler) UpdateCrewmate(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req crewmateFormRequest

	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err, h.crewmates.ResumeEdit(e.Param("id")).View())
	}

	l.Info("updating crewmate",
		zap.String("crewmate_id", req.ID),
		zap.String("name", req.Name),
		zap.String("speed", req.Speed))

	view, err := h.crewmates.ResumeEdit(req.ID).Submit(e.Request().Context(), req.form())
	if err != nil {
		l.Error("failed to update crewmate", zap.String("crewmate_id", req.ID), zap.Any("error", err))
		return h.transportError(e, err, view)
	}

	return e.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteCrewmate(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req deleteRequest

	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err, h.crewmates.ResumeEdit(e.Param("id")).View())
	}

	l.Info("deleting crewmate", zap.String("crewmate_id", req.ID), zap.Bool("confirm", req.Confirm))

	view, err := h.crewmates.ResumeEdit(req.ID).Delete(e.Request().Context(), req.Confirm)
	if err != nil {
		l.Error("failed to delete crewmate", zap.String("crewmate_id", req.ID), zap.Any("error", err))
		return h.transportError(e, err, view)
	}

	return e.JSON(http.StatusOK, view)
}

type errorResponse struct {
	Error *service.Error `json:"error"`
	View  any            `json:"view,omitempty"`
}

// transportError writes err along with the view the client should keep
// showing.
func (h *Handler) transportError(e echo.Context, err *service.Error, view any) error {
	response := errorResponse{Error: err, View: view}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeValidation:
		return e.JSON(http.StatusUnprocessableEntity, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeConfirmationRequired, service.ErrorCodeInvalidState:
		return e.JSON(http.StatusConflict, response)
	case service.ErrorCodeStore:
		return e.JSON(http.StatusBadGateway, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}

// httpErrorHandler renders errors raised outside the handlers (unknown
// routes, wrong methods, recovered panics) in the same envelope.
func (h *Handler) httpErrorHandler(err error, e echo.Context) {
	if e.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	errCode := service.ErrorCodeInternal
	switch code {
	case http.StatusNotFound:
		errCode = service.ErrorCodeNotFound
	case http.StatusBadRequest:
		errCode = service.ErrorCodeInvalidBody
	case http.StatusMethodNotAllowed:
		errCode = service.ErrorCodeMethodNotAllowed
	}

	if code >= http.StatusInternalServerError {
		GetLoggerFromContext(e).Error("unhandled error", zap.Error(err))
	}

	var writeErr error
	if e.Request().Method == http.MethodHead {
		writeErr = e.NoContent(code)
	} else {
		writeErr = e.JSON(code, errorResponse{Error: service.NewError(errCode, message)})
	}
	if writeErr != nil {
		GetLoggerFromContext(e).Error("failed to write error response", zap.Error(writeErr))
	}
}
