package get_calendar_config

import (
	"github.com/agendly/appointment-service/internal/domain"
)

// TimeBlockResponse HTTP модель блока времени
type TimeBlockResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CalendarConfigResponse HTTP response model
type CalendarConfigResponse struct {
	TenantID        int64                          `json:"tenantId"`
	StartHour       float64                        `json:"startHour"`
	EndHour         float64                        `json:"endHour"`
	IntervalMinutes int                            `json:"intervalMinutes"`
	LunchStart      float64                        `json:"lunchStart"`
	LunchEnd        float64                        `json:"lunchEnd"`
	MaxMonthsAhead  int                            `json:"maxMonthsAhead"`
	WorkingDays     []int                          `json:"workingDays"`
	StaffCount      int                            `json:"staffCount"`
	DayBlocks       map[string][]TimeBlockResponse `json:"dayBlocks,omitempty"`
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
		resp.DayBlocks = make(map[string][]TimeBlockResponse, len(config.DayBlocks))
		for day, blocks := range config.DayBlocks {
			converted := make([]TimeBlockResponse, 0, len(blocks))
			for _, block := range blocks {
				converted = append(converted, TimeBlockResponse{
					Start: block.Start.String(),
					End:   block.End.String(),
				})
			}
			resp.DayBlocks[day] = converted
		}
	}

	return resp
}
