package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s *stubVerifier) VerifyRequest(req *http.Request) (string, error) {
	return s.userID, s.err
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("should set the session when the verifier accepts the credential", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := SessionMiddleware(&stubVerifier{userID: "user1"})

		var called bool
		handler := mw(func(ctx echo.Context) error {
			called = true
			assert.Equal(t, "user1", shared.GetSession(ctx).GetUserID())
			return nil
		})

		_ = handler(c)
		assert.True(t, called)
	})

	t.Run("should set NoSession and continue when verification fails", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := SessionMiddleware(&stubVerifier{err: errors.New("could not verify request")})

		var called bool
		handler := mw(func(ctx echo.Context) error {
			called = true
			assert.Equal(t, NoSession, shared.GetSession(ctx))
			return nil
		})

		_ = handler(c)
		assert.True(t, called)
	})
}

func TestRequireSession(t *testing.T) {
	t.Run("should reject NoSession with a 401", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		shared.SetSession(c, NoSession)

		handler := RequireSession(func(ctx echo.Context) error {
			t.Fatal("handler should not be reached")
			return nil
		})

		err := handler(c)
		httpErr := &echo.HTTPError{}
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 401, httpErr.Code)
	})

	t.Run("should pass authenticated requests through", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		shared.SetSession(c, NewSession("user1"))

		var called bool
		handler := RequireSession(func(ctx echo.Context) error {
			called = true
			return nil
		})

		assert.NoError(t, handler(c))
		assert.True(t, called)
	})
}

func TestTokenVerifier(t *testing.T) {
	t.Run("should reject a missing authorization header", func(t *testing.T) {
		verifier := NewTokenVerifier(nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := verifier.VerifyRequest(req)
		assert.Error(t, err)
	})

	t.Run("should reject a non token scheme", func(t *testing.T) {
		verifier := NewTokenVerifier(nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")

		_, err := verifier.VerifyRequest(req)
		assert.Error(t, err)
	})
}
