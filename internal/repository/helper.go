package repository

import (
	"fmt"
	"time"
)

// ParseTime parses the date and timestamp formats SQLite hands back:
// plain dates, RFC3339, and the CURRENT_TIMESTAMP layout.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			returnTime, err = time.Parse("2006-01-02 15:04:05", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
			}
		}
	}
	return returnTime.UTC(), nil
}

// TaxYearBounds returns the inclusive calendar bounds of a tax year in UTC.
func TaxYearBounds(taxYear int) (time.Time, time.Time) {
	start := time.Date(taxYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}
