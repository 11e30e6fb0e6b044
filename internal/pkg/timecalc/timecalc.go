// Package timecalc holds the pure time arithmetic behind attendance
// derivation: elapsed work hours, overtime, night-hour buckets and the
// weekend holiday check. No side effects, no collaborators.
package timecalc

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OvertimeThresholdHours is the daily threshold above which worked hours
// count as overtime.
const OvertimeThresholdHours = 8

// Night window boundaries. A clock-hour bucket counts as a night hour when
// its starting hour falls in [NightStartHour, 24) or [0, NightEndHour).
const (
	NightStartHour = 22
	NightEndHour   = 6
)

var ErrInvalidRange = errors.New("check-out time is before check-in time")

// ElapsedHours returns the duration between checkIn and checkOut in hours,
// rounded to two decimals. Fails when checkOut precedes checkIn.
func ElapsedHours(checkIn, checkOut time.Time) (decimal.Decimal, error) {
	if checkOut.Before(checkIn) {
		return decimal.Zero, ErrInvalidRange
	}

	hours := decimal.NewFromFloat(checkOut.Sub(checkIn).Minutes()).
		Div(decimal.NewFromInt(60))
	return hours.Round(2), nil
}

// OvertimeHours returns the hours worked beyond the daily threshold,
// rounded to two decimals. Never negative.
func OvertimeHours(elapsed decimal.Decimal) decimal.Decimal {
	overtime := elapsed.Sub(decimal.NewFromInt(OvertimeThresholdHours))
	if overtime.IsNegative() {
		return decimal.Zero
	}
	return overtime.Round(2)
}

// NightHours counts whole clock-hour buckets between checkIn and checkOut
// whose starting hour lies inside the night window. The walk starts at
// checkIn and advances one hour at a time until it reaches checkOut, so a
// bucket that only partially overlaps the shift still counts as one.
//
// This deliberately counts buckets rather than minute-level overlap: a
// 21:55-22:05 shift contributes zero night hours because its only bucket
// starts at 21:00.
func NightHours(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}

	count := 0
	for cursor := checkIn; cursor.Before(checkOut); cursor = cursor.Add(time.Hour) {
		h := cursor.Hour()
		if h >= NightStartHour || h < NightEndHour {
			count++
		}
	}
	return count
}

// IsHoliday reports whether date falls on a weekend. Public-holiday
// calendars are not consulted.
func IsHoliday(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
