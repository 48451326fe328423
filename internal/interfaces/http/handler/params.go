package handler

import (
	"strconv"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DateLayout is the date format of path and query parameters
const DateLayout = "2006-01-02"

const (
	msgInvalidDate    = "Must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
	msgInvalidNumber  = "Must be a number"
	msgInvalidInteger = "Must be an integer"
	msgRequired       = "Is required"
)

// ParseDate accepts a calendar date or an RFC 3339 timestamp
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// bindList binds the paging query parameters; on failure the response is written
func (h *BaseHandler) bindList(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return shared.Filter{}, false
	}
	return req.Filter(), true
}

// bindSearch binds keyword and paging query parameters
func (h *BaseHandler) bindSearch(c *gin.Context) (string, shared.Filter, bool) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return "", shared.Filter{}, false
	}
	return req.Keyword, req.Filter(), true
}

// pathDate parses a mandatory date path parameter
func (h *BaseHandler) pathDate(c *gin.Context, name string) (time.Time, bool) {
	t, err := ParseDate(c.Param(name))
	if err != nil {
		h.InvalidParam(c, name, msgInvalidDate)
		return time.Time{}, false
	}
	return t, true
}

// pathDecimal parses a mandatory decimal path parameter
func (h *BaseHandler) pathDecimal(c *gin.Context, name string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(c.Param(name))
	if err != nil {
		h.InvalidParam(c, name, msgInvalidNumber)
		return decimal.Decimal{}, false
	}
	return d, true
}

// queryDate parses an optional date query parameter. An absent parameter yields nil.
func (h *BaseHandler) queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := ParseDate(raw)
	if err != nil {
		h.InvalidParam(c, name, msgInvalidDate)
		return nil, false
	}
	return &t, true
}

// queryDateOrNow parses an optional date query parameter, defaulting to now
func (h *BaseHandler) queryDateOrNow(c *gin.Context, name string) (time.Time, bool) {
	t, ok := h.queryDate(c, name)
	if !ok {
		return time.Time{}, false
	}
	if t == nil {
		return time.Now(), true
	}
	return *t, true
}

// queryDecimal parses an optional decimal query parameter
func (h *BaseHandler) queryDecimal(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		h.InvalidParam(c, name, msgInvalidNumber)
		return nil, false
	}
	return &d, true
}

// queryRequiredDecimal parses a mandatory decimal query parameter
func (h *BaseHandler) queryRequiredDecimal(c *gin.Context, name string) (decimal.Decimal, bool) {
	d, ok := h.queryDecimal(c, name)
	if !ok {
		return decimal.Decimal{}, false
	}
	if d == nil {
		h.InvalidParam(c, name, msgRequired)
		return decimal.Decimal{}, false
	}
	return *d, true
}

// queryRequired returns a mandatory string query parameter
func (h *BaseHandler) queryRequired(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		h.InvalidParam(c, name, msgRequired)
		return "", false
	}
	return v, true
}

// intParam parses an integer path parameter
func (h *BaseHandler) intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		h.InvalidParam(c, name, msgInvalidInteger)
		return 0, false
	}
	return n, true
}
