package get_calendar_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendly/appointment-service/internal/api/handlers"
	calendarService "github.com/agendly/appointment-service/internal/service/calendar"
)

const (
	msgInvalidTenantID = "некорректный ID арендатора"
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

// Handle GET /api/v1/tenants/{tenantId}/calendar-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/calendar-config - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	config, err := h.service.GetConfig(r.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, calendarService.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/calendar-config - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidTenantID)

		default:
			h.logger.Error("GET /tenants/{id}/calendar-config - Failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/calendar-config - Retrieved: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(config))
}
