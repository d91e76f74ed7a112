package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// ParseUintIDParam answers 400 and returns false when the path parameter is
// not a positive integer.
func ParseUintIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 32)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// queryParser reads optional query parameters and collects the malformed
// ones so they can be answered together.
type queryParser struct {
	c    *gin.Context
	errs services.ValidationErrors
}

func newQueryParser(c *gin.Context) *queryParser {
	return &queryParser{c: c}
}

func (q *queryParser) fail(param, message, value string) {
	q.errs = append(q.errs, *services.NewValidationError(param, message, value))
}

func (q *queryParser) Int(param string, defaultValue int) int {
	valueStr := q.c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		q.fail(param, "must be an integer", valueStr)
		return defaultValue
	}
	return value
}

func (q *queryParser) UintPtr(param string) *uint {
	valueStr := q.c.Query(param)
	if valueStr == "" {
		return nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		q.fail(param, "must be a positive integer", valueStr)
		return nil
	}
	id := uint(value)
	return &id
}

func (q *queryParser) BoolPtr(param string) *bool {
	valueStr := q.c.Query(param)
	if valueStr == "" {
		return nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		q.fail(param, "must be true or false", valueStr)
		return nil
	}
	return &value
}

// TimePtr accepts RFC 3339 or a plain date. With endOfDay a plain date
// covers the whole day.
func (q *queryParser) TimePtr(param string, endOfDay bool) *time.Time {
	valueStr := q.c.Query(param)
	if valueStr == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, valueStr); err == nil {
		return &t
	}
	t, err := time.Parse(time.DateOnly, valueStr)
	if err != nil {
		q.fail(param, "must be a date (YYYY-MM-DD) or RFC 3339 time", valueStr)
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// Err returns the collected problems, or nil.
func (q *queryParser) Err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return q.errs
}
