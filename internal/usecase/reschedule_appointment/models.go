package reschedule_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID переносимой записи
	UserID        int64            // ID пользователя, выполняющего перенос
	IsAdmin       bool             // Администратор может переносить чужие записи
	Date          time.Time        // Новая дата (без времени)
	StartTime     types.TimeString // Новое время начала ("HH:MM")
}

// Response модель ответа с перенесённой записью
type Response struct {
	Appointment *domain.Appointment
}
