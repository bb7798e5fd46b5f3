// Package numerator provides document auto-numbering.
//
// Numbers have the form PREFIX-YYYYMMDD-NNN where NNN is the sequence hint
// plus one, zero padded to at least three digits.
package numerator

import (
	"fmt"
	"time"
)

// ResetPeriod controls when the sequence behind a prefix restarts.
type ResetPeriod string

const (
	// ResetNever keeps one counter per prefix for the life of the database.
	ResetNever ResetPeriod = "never"
	// ResetDaily keeps one counter per prefix and calendar day.
	ResetDaily ResetPeriod = "day"
)

// DefaultPadWidth is the minimum width of the numeric suffix.
const DefaultPadWidth = 3

// dateLayout is the YYYYMMDD part of a number.
const dateLayout = "20060102"

// Config holds numbering configuration for one document kind.
type Config struct {
	// Prefix added to all numbers (e.g., "ADD", "ISS")
	Prefix string

	// PadWidth is the minimum number width (default 3)
	PadWidth int

	// ResetPeriod: ResetNever or ResetDaily
	ResetPeriod ResetPeriod
}

// DefaultConfig returns the configuration used by the ledgers.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		PadWidth:    DefaultPadWidth,
		ResetPeriod: ResetNever,
	}
}

// Key is the sequence key the counter is stored under.
func (c Config) Key(date time.Time) string {
	if c.ResetPeriod == ResetDaily {
		return fmt.Sprintf("%s_%s", c.Prefix, date.Format(dateLayout))
	}
	return c.Prefix
}

// Format renders the number that follows sequenceHint on the given date.
func (c Config) Format(sequenceHint int64, date time.Time) string {
	width := c.PadWidth
	if width <= 0 {
		width = DefaultPadWidth
	}
	return fmt.Sprintf("%s-%s-%0*d", c.Prefix, date.Format(dateLayout), width, sequenceHint+1)
}
