package feed

import (
	"strconv"
	"strings"

	"github.com/courtpulse/courtpulse/internal/domain/model"
)

// NBA period lengths in minutes.
const (
	regulationPeriodMinutes = 12.0
	overtimePeriodMinutes   = 5.0
	regulationPeriods       = 4
)

// ParseClock converts a "M:SS" display clock (time remaining in the period)
// to fractional minutes. Malformed input counts as zero remaining, which
// errs toward the period being over rather than inventing time.
func ParseClock(clock string) float64 {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0
	}
	parts := strings.SplitN(clock, ":", 2)
	mins, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || mins < 0 {
		return 0
	}
	if len(parts) == 1 {
		return mins
	}
	secs, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || secs < 0 {
		secs = 0
	}
	return mins + secs/60
}

// ParseMinutesPlayed converts a boxscore minutes string, either "24" or
// "24:30", to fractional minutes. Empty or malformed input is zero.
func ParseMinutesPlayed(min string) float64 {
	return ParseClock(min)
}

// ElapsedMinutes derives game time played from the current period and the
// clock remaining in that period. Period 0 means the game has not tipped.
func ElapsedMinutes(period int, clockRemaining float64) float64 {
	if period <= 0 {
		return 0
	}
	if period <= regulationPeriods {
		played := regulationPeriodMinutes - clockRemaining
		if played < 0 {
			played = 0
		}
		return float64(period-1)*regulationPeriodMinutes + played
	}
	played := overtimePeriodMinutes - clockRemaining
	if played < 0 {
		played = 0
	}
	return model.FullGameMinutes + float64(period-regulationPeriods-1)*overtimePeriodMinutes + played
}
