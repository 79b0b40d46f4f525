package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAge(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth string
		want  int
	}{
		{"2018-05-12", 6}, // birthday later this year
		{"2018-03-10", 7}, // birthday today
		{"2018-01-01", 7}, // birthday passed
		{"2025-03-09", 0}, // newborn
		{"2026-01-01", 0}, // future date clamps to zero
		{"not-a-date", 0}, // malformed clamps to zero
	}
	for _, tc := range cases {
		p := Patient{BirthDate: tc.birth}
		p.ComputeAge(now)
		assert.Equal(t, tc.want, p.Age, "birth date %s", tc.birth)
	}
}

func TestAppointmentNormalize(t *testing.T) {
	apt := Appointment{}
	apt.Normalize()
	assert.Equal(t, AppointmentStatusScheduled, apt.Status)

	apt.Status = AppointmentStatusPendingReschedule
	apt.Normalize()
	assert.Equal(t, AppointmentStatusPendingReschedule, apt.Status)
}

func TestAppointmentOccupies(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusScheduled}).Occupies())
	assert.False(t, (&Appointment{Status: AppointmentStatusPendingReschedule}).Occupies())
	assert.False(t, (&Appointment{Status: AppointmentStatusRescheduled}).Occupies())
}

func TestCellKey(t *testing.T) {
	assert.Equal(t, "2025-03-10_10:00", CellKey("2025-03-10", "10:00"))
}
