package query

import (
	"strings"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// ParseDateRange turns optional YYYY-MM-DD bounds into an inclusive range
// from the start of the first day to the end of the last day. Both bounds
// or neither must be given.
func ParseDateRange(start, end string) (domain.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return domain.DateRange{}, nil
	}
	if start == "" || end == "" {
		return domain.DateRange{}, domain.NewValidationError("date", "please select both start and end dates")
	}

	from, err := timeutil.ParseDate(start)
	if err != nil {
		return domain.DateRange{}, domain.NewValidationError("start", "expected date as YYYY-MM-DD")
	}
	to, err := timeutil.ParseDate(end)
	if err != nil {
		return domain.DateRange{}, domain.NewValidationError("end", "expected date as YYYY-MM-DD")
	}
	if from.After(to) {
		return domain.DateRange{}, domain.NewValidationError("date", "start date must not be after end date")
	}

	return domain.DateRange{
		From: timeutil.StartOfDay(from),
		To:   timeutil.EndOfDay(to),
	}, nil
}
