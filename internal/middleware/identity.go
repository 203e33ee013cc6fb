package middleware

// identity.go provides the client identity used for rate limit keys:
// the authenticated user id when JWTAuth ran earlier in the chain, the
// remote IP otherwise.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// clientID returns a stable identifier for the caller.
func clientID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprintf("u:%v", v)
	}
	return "ip:" + c.RealIP()
}
