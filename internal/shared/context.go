package shared

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthSession is the opaque authenticated identity attached to a request.
// It is supplied by the auth middleware; the credential scheme behind it is
// a collaborator of this package, not part of it.
type AuthSession interface {
	GetUserID() string
}

func GetSession(ctx Context) AuthSession {
	return ctx.Get("session").(AuthSession)
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

// ParseID parses a path parameter into a uuid, returning a 400 error the
// central error handler can render as-is.
func ParseID(ctx Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, "invalid "+param).WithInternal(err)
	}
	return id, nil
}
