package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/riskstack/riskstack/internal/shared"
)

type verifier interface {
	VerifyRequest(req *http.Request) (string, error)
}

// SessionMiddleware resolves the request credential into a session. A
// request without a valid credential gets NoSession and continues; the
// access check happens in RequireSession.
func SessionMiddleware(verifier verifier) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := verifier.VerifyRequest(c.Request())
			if err != nil {
				shared.SetSession(c, NoSession)
				return next(c)
			}

			shared.SetSession(c, NewSession(userID))
			return next(c)
		}
	}
}

// RequireSession rejects requests that carry NoSession. 401 here is
// distinct from 404: the resource may well exist, the caller just has
// no business asking.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if shared.GetSession(c).GetUserID() == "" {
			return echo.NewHTTPError(401, "could not authenticate request")
		}
		return next(c)
	}
}
