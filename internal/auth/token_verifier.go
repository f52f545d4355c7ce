package auth

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
)

type userRepository interface {
	ReadByToken(token string) (models.User, error)
}

// TokenVerifier authenticates requests via "Authorization: Token <key>".
// Only the sha256 hash of the key is ever stored on the user row.
type TokenVerifier struct {
	userRepository userRepository
}

func NewTokenVerifier(userRepository userRepository) *TokenVerifier {
	return &TokenVerifier{userRepository: userRepository}
}

func (v *TokenVerifier) VerifyRequest(req *http.Request) (string, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("no authorization header")
	}

	token, ok := strings.CutPrefix(header, "Token ")
	if !ok {
		return "", errors.New("unsupported authorization scheme")
	}

	user, err := v.userRepository.ReadByToken(strings.TrimSpace(token))
	if err != nil {
		return "", errors.Wrap(err, "could not verify token")
	}

	return user.ID.String(), nil
}
