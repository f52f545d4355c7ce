package auth

// Session carries the identity of an authenticated request.
type Session struct {
	userID string
}

func NewSession(userID string) Session {
	return Session{userID: userID}
}

func (s Session) GetUserID() string {
	return s.userID
}

// NoSession marks a request that presented no valid credential. It still
// flows through the handler chain so unauthenticated routes keep working.
var NoSession = Session{userID: ""}
