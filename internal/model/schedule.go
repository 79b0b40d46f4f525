package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OperatingHours is the singleton clinic-hours record. Times are stored
// as "HH:MM" strings; only the hour component drives slot generation.
type OperatingHours struct {
	OpenTime  string    `db:"open_time" json:"open_time"`
	CloseTime string    `db:"close_time" json:"close_time"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateOperatingHoursRequest struct {
	OpenTime  string `json:"open_time" binding:"required,datetime=15:04"`
	CloseTime string `json:"close_time" binding:"required,datetime=15:04"`
}

// WeekDay is one column of the weekly calendar grid.
type WeekDay struct {
	Date  string `json:"date"`  // "2006-01-02"
	Label string `json:"label"` // e.g. "Lun 3"
}

// WeekGrid is the derived, non-persistent weekly view skeleton:
// seven days Monday through Sunday and the bookable hourly slots.
type WeekGrid struct {
	Days       []WeekDay `json:"days"`
	Slots      []string  `json:"slots"`
	MonthLabel string    `json:"month_label"`
	PrevWeek   string    `json:"prev_week"`
	NextWeek   string    `json:"next_week"`
}

// CalendarEntry is a display-ready occupied cell: foreign keys already
// resolved to names so the presentation layer never touches the store.
type CalendarEntry struct {
	ID           uuid.UUID         `json:"id"`
	Patient      string            `json:"patient"`
	Service      string            `json:"service"`
	Practitioner string            `json:"practitioner"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
}

// CalendarView is the full payload for the weekly calendar: the grid
// plus occupied cells keyed "{date}_{time_slot}".
type CalendarView struct {
	Grid    WeekGrid                 `json:"grid"`
	Entries map[string]CalendarEntry `json:"entries"`
}

// CellKey builds the occupied-map key for a (date, slot) pair.
func CellKey(date, timeSlot string) string {
	return fmt.Sprintf("%s_%s", date, timeSlot)
}

// RescheduleItem is one row of the pending-reschedule queue.
type RescheduleItem struct {
	ID           uuid.UUID `json:"id"`
	Patient      string    `json:"patient"`
	Service      string    `json:"service"`
	Practitioner string    `json:"practitioner"`
	OriginalDate string    `json:"original_date"`
	OriginalTime string    `json:"original_time"`
	Reason       string    `json:"reason"`
}

// PractitionerOption is a roster entry offered on the reschedule form.
type PractitionerOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RescheduleOptions is everything the reschedule form needs: a summary
// of the pending appointment, free slots for the chosen date and
// practitioner, and the roster excluding the current practitioner.
type RescheduleOptions struct {
	Original       RescheduleItem       `json:"original"`
	AvailableSlots []string             `json:"available_slots"`
	Practitioners  []PractitionerOption `json:"practitioners"`
	MinDate        string               `json:"min_date"`
	SuggestedDate  string               `json:"suggested_date"`
}
