package update_calendar_config

import (
	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

// TimeBlockModel HTTP модель блока времени
type TimeBlockModel struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// UpdateCalendarConfigRequest HTTP request model
type UpdateCalendarConfigRequest struct {
	StartHour       float64                     `json:"startHour"`
	EndHour         float64                     `json:"endHour"`
	IntervalMinutes int                         `json:"intervalMinutes"`
	LunchStart      float64                     `json:"lunchStart"`
	LunchEnd        float64                     `json:"lunchEnd"`
	MaxMonthsAhead  int                         `json:"maxMonthsAhead"`
	WorkingDays     []int                       `json:"workingDays"`
	StaffCount      int                         `json:"staffCount"`
	DayBlocks       map[string][]TimeBlockModel `json:"dayBlocks,omitempty"`
}

// CalendarConfigResponse HTTP response model
type CalendarConfigResponse struct {
	TenantID        int64                       `json:"tenantId"`
	StartHour       float64                     `json:"startHour"`
	EndHour         float64                     `json:"endHour"`
	IntervalMinutes int                         `json:"intervalMinutes"`
	LunchStart      float64                     `json:"lunchStart"`
	LunchEnd        float64                     `json:"lunchEnd"`
	MaxMonthsAhead  int                         `json:"maxMonthsAhead"`
	WorkingDays     []int                       `json:"workingDays"`
	StaffCount      int                         `json:"staffCount"`
	DayBlocks       map[string][]TimeBlockModel `json:"dayBlocks,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменную конфигурацию
func (r *UpdateCalendarConfigRequest) ToDomain(tenantID int64) (*domain.CalendarConfig, error) {
	config := &domain.CalendarConfig{
		TenantID:        tenantID,
		StartHour:       r.StartHour,
		EndHour:         r.EndHour,
		IntervalMinutes: r.IntervalMinutes,
		LunchStart:      r.LunchStart,
		LunchEnd:        r.LunchEnd,
		MaxMonthsAhead:  r.MaxMonthsAhead,
		WorkingDays:     r.WorkingDays,
		StaffCount:      r.StaffCount,
	}

	if r.DayBlocks != nil {
		config.DayBlocks = make(map[string][]domain.TimeBlock, len(r.DayBlocks))
		for day, blocks := range r.DayBlocks {
			// Пустой список означает, что арендатор закрыт в этот день недели
			converted := make([]domain.TimeBlock, 0, len(blocks))
			for _, block := range blocks {
				start, err := types.NewTimeStringFromString(block.Start)
				if err != nil {
					return nil, err
				}
				end, err := types.NewTimeStringFromString(block.End)
				if err != nil {
					return nil, err
				}
				converted = append(converted, domain.TimeBlock{Start: start, End: end})
			}
			config.DayBlocks[day] = converted
		}
	}

	return config, nil
}

// FromDomain конвертирует доменную конфигурацию в HTTP response
func FromDomain(config *domain.CalendarConfig) *CalendarConfigResponse {
	resp := &CalendarConfigResponse{
		TenantID:        config.TenantID,
		StartHour:       config.StartHour,
		EndHour:         config.EndHour,
		IntervalMinutes: config.IntervalMinutes,
		LunchStart:      config.LunchStart,
		LunchEnd:        config.LunchEnd,
		MaxMonthsAhead:  config.MaxMonthsAhead,
		WorkingDays:     config.WorkingDays,
		StaffCount:      config.StaffCount,
	}

	if config.DayBlocks != nil {
		resp.DayBlocks = make(map[string][]TimeBlockModel, len(config.DayBlocks))
		for day, blocks := range config.DayBlocks {
			converted := make([]TimeBlockModel, 0, len(blocks))
			for _, block := range blocks {
				converted = append(converted, TimeBlockModel{
					Start: block.Start.String(),
					End:   block.End.String(),
				})
			}
			resp.DayBlocks[day] = converted
		}
	}

	return resp
}
