package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/agendly/appointment-service/pkg/types"
)

// TimeBlock is a contiguous open interval within a day, e.g. a morning block
// before lunch. Start is inclusive, End is exclusive.
type TimeBlock struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// ContainsWindow returns true if the window [start, start+durationMinutes)
// fits entirely inside the block.
func (b TimeBlock) ContainsWindow(start types.TimeString, durationMinutes int) bool {
	if start.IsBefore(b.Start) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(b.End)
}

// CalendarConfig is the per-tenant business calendar: working days, daily
// hours with an optional lunch break, slot granularity, booking horizon and
// staff capacity. One config per tenant; updated by an administrator, read on
// every booking attempt.
//
// DayBlocks overrides the uniform StartHour/EndHour/lunch schedule for the
// weekdays it names. A present-but-empty entry means the tenant is explicitly
// closed that weekday; a missing entry means the uniform schedule applies.
type CalendarConfig struct {
	ID              int64
	TenantID        int64
	StartHour       float64 // fractional hours, e.g. 9.5 = 09:30
	EndHour         float64
	IntervalMinutes int
	LunchStart      float64 // LunchStart >= LunchEnd disables the lunch break
	LunchEnd        float64
	MaxMonthsAhead  int
	WorkingDays     []int // weekday ordinals, 0=Sunday .. 6=Saturday

	// StaffCount models capacity as an undifferentiated pool: any of the
	// StaffCount interchangeable workers can take any appointment. There is
	// no per-worker skill or assignment tracking.
	StaffCount int

	DayBlocks map[string][]TimeBlock // weekday name -> override blocks

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendarConfig returns the configuration a tenant starts with
func DefaultCalendarConfig(tenantID int64) *CalendarConfig {
	return &CalendarConfig{
		TenantID:        tenantID,
		StartHour:       DefaultStartHour,
		EndHour:         DefaultEndHour,
		IntervalMinutes: DefaultIntervalMinutes,
		LunchStart:      0,
		LunchEnd:        0,
		MaxMonthsAhead:  DefaultMaxMonthsAhead,
		WorkingDays:     []int{1, 2, 3, 4, 5, 6}, // Monday..Saturday
		StaffCount:      DefaultStaffCount,
	}
}

// IsWorkingDay returns true if the date's weekday is in WorkingDays
func (c *CalendarConfig) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range c.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// LunchEnabled returns true if the lunch interval is meaningful
func (c *CalendarConfig) LunchEnabled() bool {
	return c.LunchStart < c.LunchEnd
}

// OpenBlocksFor resolves the ordered open time blocks for a date. A DayBlocks
// entry for the date's weekday is authoritative, even when empty (explicitly
// closed). Otherwise the uniform StartHour..EndHour range is split at the
// lunch boundaries, yielding zero, one or two blocks.
func (c *CalendarConfig) OpenBlocksFor(date time.Time) []TimeBlock {
	if c.DayBlocks != nil {
		if blocks, ok := c.DayBlocks[WeekdayName(date.Weekday())]; ok {
			return blocks
		}
	}
	return c.uniformBlocks()
}

func (c *CalendarConfig) uniformBlocks() []TimeBlock {
	start := HourToClock(c.StartHour)
	end := HourToClock(c.EndHour)

	if !start.IsBefore(end) {
		return []TimeBlock{}
	}

	if !c.LunchEnabled() {
		return []TimeBlock{{Start: start, End: end}}
	}

	lunchStart := HourToClock(c.LunchStart)
	lunchEnd := HourToClock(c.LunchEnd)

	// Lunch entirely outside the working range: single block.
	if !lunchStart.IsBefore(end) || !lunchEnd.IsAfter(start) {
		return []TimeBlock{{Start: start, End: end}}
	}

	blocks := make([]TimeBlock, 0, 2)
	if start.IsBefore(lunchStart) {
		blocks = append(blocks, TimeBlock{Start: start, End: lunchStart})
	}
	if lunchEnd.IsBefore(end) {
		blocks = append(blocks, TimeBlock{Start: lunchEnd, End: end})
	}
	return blocks
}

// WindowWithinOpenBlocks returns true if the candidate window lies entirely
// inside one of the date's open blocks.
func (c *CalendarConfig) WindowWithinOpenBlocks(date time.Time, start types.TimeString, durationMinutes int) bool {
	for _, block := range c.OpenBlocksFor(date) {
		if block.ContainsWindow(start, durationMinutes) {
			return true
		}
	}
	return false
}

// Validate checks the configuration for malformation. A malformed config is
// rejected at save time and never silently coerced.
func (c *CalendarConfig) Validate() error {
	if c.IntervalMinutes < MinIntervalMinutes || c.IntervalMinutes > MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidConfig, MinIntervalMinutes, MaxIntervalMinutes)
	}
	if c.StaffCount < MinStaffCount || c.StaffCount > MaxStaffCount {
		return fmt.Errorf("%w: staffCount must be between %d and %d",
			ErrInvalidConfig, MinStaffCount, MaxStaffCount)
	}
	if c.MaxMonthsAhead < MinMonthsAhead || c.MaxMonthsAhead > MaxMonthsAheadLimit {
		return fmt.Errorf("%w: maxMonthsAhead must be between %d and %d",
			ErrInvalidConfig, MinMonthsAhead, MaxMonthsAheadLimit)
	}
	if c.StartHour < 0 || c.EndHour > 24 || c.StartHour >= c.EndHour {
		return fmt.Errorf("%w: startHour must be before endHour within 0..24", ErrInvalidConfig)
	}
	if c.LunchEnabled() {
		if c.LunchStart < 0 || c.LunchEnd > 24 {
			return fmt.Errorf("%w: lunch interval must lie within 0..24", ErrInvalidConfig)
		}
	}
	if len(c.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidConfig)
	}
	for _, d := range c.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day ordinal %d out of range 0..6", ErrInvalidConfig, d)
		}
	}
	for day, blocks := range c.DayBlocks {
		if !validWeekdayName(day) {
			return fmt.Errorf("%w: unknown weekday %q in dayBlocks", ErrInvalidConfig, day)
		}
		prevEnd := types.TimeString("")
		for _, block := range blocks {
			if err := block.Start.Validate(); err != nil {
				return fmt.Errorf("%w: dayBlocks[%s]: invalid block start %q", ErrInvalidConfig, day, block.Start)
			}
			if err := block.End.Validate(); err != nil {
				return fmt.Errorf("%w: dayBlocks[%s]: invalid block end %q", ErrInvalidConfig, day, block.End)
			}
			if !block.Start.IsBefore(block.End) {
				return fmt.Errorf("%w: dayBlocks[%s]: block start %s must be before end %s",
					ErrInvalidConfig, day, block.Start, block.End)
			}
			if !prevEnd.IsZero() && block.Start.IsBefore(prevEnd) {
				return fmt.Errorf("%w: dayBlocks[%s]: blocks must be ordered and non-overlapping", ErrInvalidConfig, day)
			}
			prevEnd = block.End
		}
	}
	return nil
}

// HourToClock converts a fractional hour (9.5) into a clock time ("09:30").
// Sub-minute fractions are rounded to the nearest minute.
func HourToClock(hour float64) types.TimeString {
	totalMinutes := int(math.Round(hour * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if totalMinutes > 24*60 {
		totalMinutes = 24 * 60
	}
	ts, _ := types.FromMinutes(totalMinutes)
	return ts
}

var weekdayNames = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// WeekdayName returns the lowercase weekday name used as a DayBlocks key
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

func validWeekdayName(name string) bool {
	for _, n := range weekdayNames {
		if n == name {
			return true
		}
	}
	return false
}
