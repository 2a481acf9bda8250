package get_tenant_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendly/appointment-service/internal/api/handlers"
	"github.com/agendly/appointment-service/internal/api/middleware"
	"github.com/agendly/appointment-service/internal/service/appointments"
)

const (
	msgInvalidTenantID = "некорректный ID арендатора"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgAdminOnly       = "список записей арендатора доступен только администратору"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/appointments
// Query params: startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /tenants/{id}/appointments - Forbidden: tenant_id=%d, user_id=%d", tenantID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	query := r.URL.Query()
	filter, err := ToFilter(tenantID, query.Get("startDate"), query.Get("endDate"),
		query.Get("status"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	appts, err := h.service.GetTenantAppointments(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/appointments - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /tenants/{id}/appointments - Failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/appointments - Retrieved: tenant_id=%d, count=%d", tenantID, len(appts))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(appts))
}
