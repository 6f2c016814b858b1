package catalog

import (
	"fmt"
	"strings"
	"time"
)

const yearMonthLayout = "2006-01"

// YearMonth is the granularity used for expiry checks. Days are ignored.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf truncates a wall-clock time to its year and month.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses values such as "2025-07".
func ParseYearMonth(value string) (YearMonth, error) {
	t, err := time.Parse(yearMonthLayout, strings.TrimSpace(value))
	if err != nil {
		return YearMonth{}, fmt.Errorf("parse year-month %q: %w", value, err)
	}
	return YearMonthOf(t), nil
}

// IsZero reports whether the value was never set.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// After reports whether ym falls in a later month than other.
func (ym YearMonth) After(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year > other.Year
	}
	return ym.Month > other.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Date is a calendar date attached to perishable products.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date; the day defaults to the first of the month.
func NewDate(year int, month time.Month, day ...int) Date {
	d := 1
	if len(day) > 0 && day[0] > 0 {
		d = day[0]
	}
	return Date{Year: year, Month: month, Day: d}
}

// YearMonth drops the day component.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
