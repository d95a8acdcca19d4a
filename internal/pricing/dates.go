package pricing

import (
	"fmt"
	"time"
)

// DateDifference is an inclusive span between two dates, normalized to whole
// months plus leftover days.
type DateDifference struct {
	Months int
	Days   int
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// DiffDates computes the inclusive difference between two dates: both the
// start and end date count as occupied days.
func DiffDates(start, end time.Time) (DateDifference, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return DateDifference{}, fmt.Errorf("end date must be >= start date")
	}

	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day() + 1

	if days < 0 {
		months--
		prevMonth := int(end.Month()) - 1
		prevYear := end.Year()
		if prevMonth < 1 {
			prevMonth = 12
			prevYear--
		}
		days += DaysInMonth(prevYear, prevMonth)
	}
	if months < 0 {
		years--
		months += 12
	}

	return DateDifference{Months: months + 12*years, Days: days}, nil
}

// TripMonths returns the trip length in whole months, rounding any partial
// month up. Minimum one month.
func TripMonths(start, end time.Time) (int, error) {
	diff, err := DiffDates(start, end)
	if err != nil {
		return 0, err
	}
	months := diff.Months
	if diff.Days > 0 {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
