package loader

import (
	"fmt"
	"strings"
	"time"
)

// DefaultReferenceYear is substituted into timestamps that carry no year
// (labels like "24.06 12:15"). A fixed constant keeps runs reproducible;
// using the wall-clock year would change results across a year boundary.
const DefaultReferenceYear = 2024

// dateTimeLayout accepts both zero-padded and unpadded day/month fields.
const dateTimeLayout = "2.1.2006 15:04"

// ParseTimestamp parses one timestamp label from an uploaded file.
//
// Accepted forms, always day-first:
//
//	DD.MM.YYYY HH:MM
//	DD.MM.YY HH:MM    (two-digit year, expanded by prefixing "20")
//	DD.MM HH:MM       (no year; refYear is substituted)
//	DD.MM. HH:MM      (trailing dot variant of the above)
//
// Anything else is an error; callers skip the row rather than aborting.
func ParseTimestamp(label string, refYear int) (time.Time, error) {
	s := strings.TrimSpace(label)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}, fmt.Errorf("empty timestamp label")
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("timestamp %q: want \"<date> <time>\"", label)
	}
	datePart := strings.TrimSuffix(fields[0], ".")
	timePart := fields[1]

	parts := strings.Split(datePart, ".")
	switch len(parts) {
	case 2:
		// No year given; pin every such row to the same reference year.
		datePart = fmt.Sprintf("%s.%s.%d", parts[0], parts[1], refYear)
	case 3:
		if len(parts[2]) == 2 {
			parts[2] = "20" + parts[2]
			datePart = strings.Join(parts, ".")
		}
	default:
		return time.Time{}, fmt.Errorf("timestamp %q: unrecognized date part", label)
	}

	t, err := time.Parse(dateTimeLayout, datePart+" "+timePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", label, err)
	}
	return t, nil
}
