package update_calendar_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendly/appointment-service/internal/api/handlers"
	"github.com/agendly/appointment-service/internal/api/middleware"
	"github.com/agendly/appointment-service/internal/domain"
	calendarService "github.com/agendly/appointment-service/internal/service/calendar"
)

const (
	msgInvalidTenantID    = "некорректный ID арендатора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAdminOnly          = "изменение конфигурации доступно только администратору"
	msgInvalidConfig      = "некорректная конфигурация календаря"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantId}/calendar-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/calendar-config - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{id}/calendar-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("PUT /tenants/{id}/calendar-config - Forbidden: tenant_id=%d, user_id=%d", tenantID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req UpdateCalendarConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/calendar-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := req.ToDomain(tenantID)
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/calendar-config - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfig)
		return
	}

	saved, err := h.service.UpdateConfig(r.Context(), config)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidConfig):
			h.logger.Warn("PUT /tenants/{id}/calendar-config - Invalid config: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, calendarService.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/calendar-config - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidTenantID)

		default:
			h.logger.Error("PUT /tenants/{id}/calendar-config - Failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/calendar-config - Updated: tenant_id=%d, user_id=%d", tenantID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(saved))
}
