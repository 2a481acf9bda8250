package get_available_slots

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

// generateSlots генерирует стартовые времена слотов внутри одного блока.
// Слоты идут с шагом intervalMinutes от начала блока; слот, который не
// помещается в блок целиком, не генерируется.
func generateSlots(block domain.TimeBlock, intervalMinutes int) []types.TimeString {
	if intervalMinutes <= 0 {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)
	current := block.Start

	for current.IsBefore(block.End) {
		slotEnd, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(block.End) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
	}

	return slots
}

// generateDaySlots генерирует слоты для всех блоков дня в хронологическом порядке
func generateDaySlots(blocks []domain.TimeBlock, intervalMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	for _, block := range blocks {
		slots = append(slots, generateSlots(block, intervalMinutes)...)
	}
	return slots
}

// filterPastSlots убирает слоты, начинающиеся раньше текущего момента.
// Для дат в будущем возвращает слоты без изменений.
func filterPastSlots(slots []types.TimeString, requestDate, now time.Time) []types.TimeString {
	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(currentTime) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// isEligibleDate проверяет дату кандидата: не в прошлом, не дальше горизонта
// бронирования (maxMonthsAhead календарных месяцев) и в рабочий день недели.
// Применяется до генерации слотов: для неподходящей даты список слотов пуст.
func isEligibleDate(date time.Time, config *domain.CalendarConfig, now time.Time) bool {
	if isDateInPast(date, now) {
		return false
	}
	if isBeyondHorizon(date, now, config.MaxMonthsAhead) {
		return false
	}
	return config.IsWorkingDay(date)
}

// isBeyondHorizon проверяет, что дата дальше maxMonthsAhead календарных месяцев.
// Горизонт считается сложением месяцев, а не фиксированным числом дней:
// последняя доступная дата для now=2024-01-15 и maxMonthsAhead=1 это 2024-02-15.
func isBeyondHorizon(date, now time.Time, maxMonthsAhead int) bool {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, maxMonthsAhead, 0)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.After(maxDate)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
