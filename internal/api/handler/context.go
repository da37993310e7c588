package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxOperator extracts the operator identity injected by the Auth middleware.
// An empty operator_id means the middleware did not run or the token carried
// no identity; either way the request cannot be attributed and is rejected.
func ctxOperator(c echo.Context) (operatorID string, err error) {
	operatorID, _ = c.Get("operator_id").(string)
	if operatorID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return operatorID, nil
}
