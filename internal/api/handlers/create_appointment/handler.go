package create_appointment

import (
	"errors"
	"net/http"

	"github.com/agendly/appointment-service/internal/api/handlers"
	"github.com/agendly/appointment-service/internal/api/middleware"
	createAppointment "github.com/agendly/appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается date=YYYY-MM-DD, startTime=HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidDuration    = "суммарная длительность услуг должна быть положительной"
	msgNonWorkingDay      = "выбранное время вне рабочих часов"
	msgOutOfHorizon       = "дата вне доступного горизонта бронирования"
	msgCapacityExceeded   = "все сотрудники заняты в выбранное время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Capacity exceeded: user_id=%d, tenant_id=%d", userID, req.TenantID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: user_id=%d, tenant_id=%d", userID, req.TenantID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: user_id=%d, tenant_id=%d", userID, req.TenantID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createAppointment.ErrNonWorkingDay):
			h.logger.Warn("POST /appointments - Outside working hours: user_id=%d, tenant_id=%d", userID, req.TenantID)
			handlers.RespondBadRequest(w, msgNonWorkingDay)

		case errors.Is(err, createAppointment.ErrOutOfHorizon):
			h.logger.Warn("POST /appointments - Out of booking horizon: user_id=%d, tenant_id=%d", userID, req.TenantID)
			handlers.RespondBadRequest(w, msgOutOfHorizon)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, tenant_id=%d, error=%v",
				userID, req.TenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, user_id=%d, tenant_id=%d",
		result.Appointment.ID, userID, req.TenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(result.Appointment))
}
