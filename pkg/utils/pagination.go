package utils

import (
	"github.com/labstack/echo/v4"
)

// CursorParam extracts the opaque pagination cursor from the request, if any.
func CursorParam(c echo.Context) string {
	return c.QueryParam("cursor")
}
