package params

import (
	"strconv"

	"space-booking-api/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries pagination values parsed from the request query string.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		p.PageSize = v
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	return p
}
