package Models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func parseDate(value, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, missingField(field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &OpError{Code: ErrMissingField, Field: field, Message: field + " must be a YYYY-MM-DD date"}
	}
	return t, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
