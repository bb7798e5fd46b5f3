package numerator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Generator hands out sequence hints for document numbers.
//
// NextHint returns how many numbers were issued before for the key derived
// from cfg and date, and atomically counts one more. Implementations run on
// the caller's transaction so a rolled back document releases its number.
type Generator interface {
	NextHint(ctx context.Context, cfg Config, date time.Time) (int64, error)
}

// Format returns {prefix}-{YYYYMMDD}-{NNN} for the given date.
func Format(prefix string, sequenceHint int64, date time.Time) string {
	return DefaultConfig(prefix).Format(sequenceHint, date)
}

// Generate formats a number for today.
func Generate(prefix string, sequenceHint int64) string {
	return Format(prefix, sequenceHint, time.Now())
}

var numberPattern = regexp.MustCompile(`^([A-Za-z]+)-(\d{8})-(\d{3,})$`)

// Parsed is a decomposed document number.
type Parsed struct {
	Prefix   string
	Date     time.Time
	Sequence int64
}

// Parse splits a well-formed number into its parts.
func Parse(number string) (Parsed, error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return Parsed{}, fmt.Errorf("malformed document number %q", number)
	}

	date, err := time.Parse(dateLayout, m[2])
	if err != nil {
		return Parsed{}, fmt.Errorf("document number %q: %w", number, err)
	}

	seq, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Parsed{}, fmt.Errorf("document number %q: %w", number, err)
	}

	return Parsed{Prefix: m[1], Date: date, Sequence: seq}, nil
}

// IsWellFormed reports whether number matches PREFIX-YYYYMMDD-NNN.
func IsWellFormed(number string) bool {
	_, err := Parse(number)
	return err == nil
}
