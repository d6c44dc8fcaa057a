package calendar

import (
	"log/slog"
	"time"
)

// Zone is the fixed company offset (UTC-3). Punch instants are always
// interpreted in this zone; there is no daylight-saving transition.
var Zone = time.FixedZone("-03", -3*60*60)

// Now returns the current instant in the company zone.
func Now() time.Time {
	return time.Now().In(Zone)
}

const (
	ReasonFimDeSemana = "Ponto não permitido em finais de semana."
	ReasonFeriado     = "Ponto não permitido em feriados."
)

// HolidayProvider answers whether a calendar date is a national holiday.
type HolidayProvider interface {
	IsHoliday(d time.Time) (bool, error)
}

// Gate decides whether a given instant admits a punch at all.
type Gate struct {
	holidays HolidayProvider
}

func NewGate(holidays HolidayProvider) *Gate {
	return &Gate{holidays: holidays}
}

// IsDayEligible blocks Saturdays, Sundays and national holidays. When the
// holiday provider is unreachable the day is treated as a working day
// (fail-open, matching long-standing behavior); the failure is logged so the
// policy stays visible in operation.
func (g *Gate) IsDayEligible(t time.Time) (bool, string) {
	local := t.In(Zone)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false, ReasonFimDeSemana
	}

	if g.holidays != nil {
		holiday, err := g.holidays.IsHoliday(local)
		if err != nil {
			slog.Warn("holiday provider unavailable, treating day as working day",
				"date", local.Format(time.DateOnly), "error", err)
		} else if holiday {
			return false, ReasonFeriado
		}
	}

	return true, ""
}

// IsHoliday answers the holiday question alone, fail-open like IsDayEligible.
// Used by bulk insertions that control weekend handling with their own flags.
func (g *Gate) IsHoliday(t time.Time) bool {
	if g.holidays == nil {
		return false
	}
	local := t.In(Zone)
	holiday, err := g.holidays.IsHoliday(local)
	if err != nil {
		slog.Warn("holiday provider unavailable, treating day as working day",
			"date", local.Format(time.DateOnly), "error", err)
		return false
	}
	return holiday
}
