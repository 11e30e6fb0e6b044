package leave

import (
	"time"

	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
)

// Annual accrual bounds: first-year grants are capped at 11 days, tenured
// grants start at 15 and top out at 25.
const (
	firstYearCapDays = 11
	tenuredBaseDays  = 15
	tenuredCapDays   = 25
	yearsPerExtraDay = 2
)

// AccrualRule computes the yearly grant in days for a hire date and year.
type AccrualRule func(hireDate time.Time, year int) float64

// accrualRules selects the grant computation per leave type code. Adding a
// leave type means adding a row here; the ledger code never branches on
// codes itself.
var accrualRules = map[leave.TypeCode]AccrualRule{
	leave.TypeAnnual: annualAccrual,
}

// AccrualRuleFor returns the rule for the code, if one is configured.
// Types without a rule (sick, unpaid) carry no yearly grant.
func AccrualRuleFor(code leave.TypeCode) (AccrualRule, bool) {
	rule, ok := accrualRules[code]
	return rule, ok
}

// annualAccrual grants by tenure measured to Dec-31 of the grant year:
// under one full year of service the employee gets one day per month
// worked, capped at 11; from one year on the grant is 15 days plus one per
// two further years, capped at 25.
func annualAccrual(hireDate time.Time, year int) float64 {
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	months := monthsBetween(hireDate, yearEnd)
	if months < 0 {
		return 0
	}

	yearsOfService := months / 12
	if yearsOfService < 1 {
		if months > firstYearCapDays {
			return firstYearCapDays
		}
		return float64(months)
	}

	days := tenuredBaseDays + (yearsOfService-1)/yearsPerExtraDay
	if days > tenuredCapDays {
		return tenuredCapDays
	}
	return float64(days)
}

// monthsBetween counts whole calendar months from a to b, decrementing
// when b's day-of-month has not yet reached a's.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}
