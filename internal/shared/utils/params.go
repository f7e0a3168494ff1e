package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// ParseIDParam parses a positive numeric id from a path parameter.
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID: %s", entityName, raw))
	}
	return uint(v), nil
}

// QueryUint returns nil when the key is absent.
func QueryUint(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %s", key, raw))
	}
	u := uint(v)
	return &u, nil
}

// QueryDecimal returns nil when the key is absent.
func QueryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %s", key, raw))
	}
	return &d, nil
}

// QueryTime reads an optional time from the query string; see ParseTime.
func QueryTime(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	return ParseTime(key, c.Query(key), endOfDay)
}

// ParseTime accepts RFC 3339 timestamps or YYYY-MM-DD dates and returns nil
// for an empty value. A bare date is read in the business timezone;
// endOfDay selects its last instant.
func ParseTime(field, raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := biztime.ParseDateInBizTimezone(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %s", field, raw))
	}
	if endOfDay {
		t = biztime.EndOfDayUTC(t)
	}
	return &t, nil
}

// ParseOptionalTime is ParseTime for optional request fields.
func ParseOptionalTime(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return ParseTime(field, *raw, false)
}

// ParseOptionalDate reads a calendar date field. Dates are stored as
// midnight UTC of the business day; an RFC 3339 value is mapped to its
// business day first.
func ParseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		d := biztime.BusinessDate(t)
		return &d, nil
	}
	d, err := time.Parse(biztime.DateLayout, *raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %s", field, *raw))
	}
	return &d, nil
}
