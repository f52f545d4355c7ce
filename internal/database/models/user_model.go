package models

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// User is the local identity store. It backs the read-only users endpoint,
// the directory lookup, and the token verifier. Token issuance happens out
// of band (seed command); only the hash is stored.
type User struct {
	Model
	Username  string `json:"username" gorm:"type:text;uniqueIndex;not null"`
	FirstName string `json:"firstName" gorm:"type:text"`
	LastName  string `json:"lastName" gorm:"type:text"`
	Email     string `json:"email" gorm:"type:text"`

	TokenHash string `json:"-" gorm:"type:text"`
}

func (m User) TableName() string {
	return "users"
}

func (m User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

func (m User) HashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return base64.StdEncoding.EncodeToString(hasher.Sum(nil))
}
