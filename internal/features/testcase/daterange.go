package testcase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange holds the resolved job date bounds. Nil bounds mean no date constraint.
type DateRange struct {
	From        *string
	To          *string
	Description string
}

// Bounded reports whether both bounds are set.
func (d DateRange) Bounded() bool {
	return d.From != nil && d.To != nil
}

// ResolveDateRange turns the request date mode into bounds relative to now.
func ResolveDateRange(req *ReportRequest, now time.Time) (DateRange, error) {
	switch req.Filter {
	case FilterDate:
		if req.FromDate == "" || req.ToDate == "" {
			return DateRange{}, fmt.Errorf("date filter needs from_date and to_date")
		}
		from := datePart(req.FromDate)
		to := datePart(req.ToDate)
		return DateRange{From: &from, To: &to, Description: fmt.Sprintf("%s to %s", from, to)}, nil

	case FilterDays:
		if req.Days == "" {
			return DateRange{}, fmt.Errorf("days filter needs a number of days")
		}
		days, err := strconv.Atoi(string(req.Days))
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid days %q: %w", req.Days, err)
		}
		return lastDays(now, days, fmt.Sprintf("Last %d days", days)), nil

	case FilterAll:
		return DateRange{Description: "All"}, nil

	default:
		return lastDays(now, defaultDays, fmt.Sprintf("Last %d days", defaultDays)), nil
	}
}

func lastDays(now time.Time, days int, description string) DateRange {
	to := now.Format(dateLayout)
	from := now.AddDate(0, 0, -days).Format(dateLayout)
	return DateRange{From: &from, To: &to, Description: description}
}

func datePart(s string) string {
	if i := strings.Index(s, "T"); i >= 0 {
		return s[:i]
	}
	return s
}
