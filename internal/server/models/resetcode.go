package models

import "github.com/taskboard-dev/taskboard/internal/server/store"

// ResetCode is a password reset item: PK "USER#<id>", SK "RESET#<code>".
// The code is valid only until ExpiresAt (Unix seconds). Single-use intent,
// not enforced by the store.
type ResetCode struct {
	PK        string `dynamodbav:"PK" json:"-"`
	SK        string `dynamodbav:"SK" json:"-"`
	Email     string `dynamodbav:"email" json:"email"`
	Code      string `dynamodbav:"code" json:"code"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt int64  `dynamodbav:"expiresAt" json:"expiresAt"`
}

// NewResetCode builds a reset item for userID. createdAt and expiresAt are
// Unix seconds.
func NewResetCode(userID, email, code string, createdAt, expiresAt int64) *ResetCode {
	key := store.ResetKey(userID, code)
	return &ResetCode{
		PK:        key.PK,
		SK:        key.SK,
		Email:     email,
		Code:      code,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}

// UserID recovers the user id from the partition key.
func (r *ResetCode) UserID() string {
	return store.UserIDFromPK(r.PK)
}
