package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/repository"
	"github.com/Debye-Igor/centro-paye-sistema/pkg/logger"
)

// Labels shown on the calendar, Monday first.
var dayLabels = [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sab", "Dom"}

var monthLabels = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

const (
	defaultOpenHour  = 9
	defaultCloseHour = 18
)

// GridGenerator builds the weekly calendar skeleton from an anchor date
// and the stored operating hours.
type GridGenerator struct {
	settings repository.SettingsRepository
	defaults model.OperatingHours
	logger   *logger.Logger
}

func NewGridGenerator(settings repository.SettingsRepository, defaults model.OperatingHours, logger *logger.Logger) *GridGenerator {
	if defaults.OpenTime == "" {
		defaults.OpenTime = fmt.Sprintf("%02d:00", defaultOpenHour)
	}
	if defaults.CloseTime == "" {
		defaults.CloseTime = fmt.Sprintf("%02d:00", defaultCloseHour)
	}
	return &GridGenerator{settings: settings, defaults: defaults, logger: logger}
}

// mondayOf returns the Monday on or before the anchor date.
func mondayOf(anchor time.Time) time.Time {
	offset := (int(anchor.Weekday()) + 6) % 7 // Monday = 0
	return anchor.AddDate(0, 0, -offset)
}

// WeekDays emits the seven day descriptors Monday through Sunday for
// the week containing anchor. The ordering is load-bearing for the
// calendar's column layout.
func WeekDays(anchor time.Time) []model.WeekDay {
	monday := mondayOf(anchor)
	days := make([]model.WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		days = append(days, model.WeekDay{
			Date:  day.Format(model.DateLayout),
			Label: fmt.Sprintf("%s %d", dayLabels[i], day.Day()),
		})
	}
	return days
}

// Slots returns the bookable hourly labels from open to close hour,
// inclusive both ends. It fails closed: when the stored configuration
// is unreadable the hardcoded default range is used so the calendar
// view degrades instead of crashing.
func (g *GridGenerator) Slots(ctx context.Context) []string {
	hours, err := g.settings.GetOperatingHours(ctx, g.defaults)
	if err != nil {
		g.logger.Warn("operating hours unreadable, using default range", "error", err.Error())
		return slotRange(defaultOpenHour, defaultCloseHour)
	}

	open, errOpen := hourOf(hours.OpenTime)
	closeH, errClose := hourOf(hours.CloseTime)
	if errOpen != nil || errClose != nil || open > closeH {
		g.logger.Warn("operating hours malformed, using default range",
			"open", hours.OpenTime, "close", hours.CloseTime)
		return slotRange(defaultOpenHour, defaultCloseHour)
	}
	return slotRange(open, closeH)
}

// BuildGrid assembles the full week grid for the given anchor date.
func (g *GridGenerator) BuildGrid(ctx context.Context, anchor time.Time) model.WeekGrid {
	days := WeekDays(anchor)
	monday := mondayOf(anchor)

	return model.WeekGrid{
		Days:       days,
		Slots:      g.Slots(ctx),
		MonthLabel: monthLabels[monday.Month()-1],
		PrevWeek:   monday.AddDate(0, 0, -7).Format(model.DateLayout),
		NextWeek:   monday.AddDate(0, 0, 7).Format(model.DateLayout),
	}
}

func slotRange(open, close int) []string {
	slots := make([]string, 0, close-open+1)
	for h := open; h <= close; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// hourOf parses the hour component of an "HH:MM" string.
func hourOf(t string) (int, error) {
	part, _, found := strings.Cut(t, ":")
	if !found {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	return strconv.Atoi(part)
}
