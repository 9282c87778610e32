// Package models defines the persisted item shapes of the single-table
// layout. Field names in dynamodbav tags match the attribute names the
// original data was written with, so existing tables keep working.
package models

import "github.com/taskboard-dev/taskboard/internal/server/store"

// User is a profile item: PK "USER#<id>", SK "PROFILE". The password digest
// never leaves the server, hence json:"-".
type User struct {
	PK             string `dynamodbav:"PK" json:"-"`
	SK             string `dynamodbav:"SK" json:"-"`
	Name           string `dynamodbav:"name" json:"name"`
	Email          string `dynamodbav:"email" json:"email"`
	PasswordDigest string `dynamodbav:"password" json:"-"`
	CreatedAt      int64  `dynamodbav:"createdAt" json:"createdAt"`
	ImageURL       string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// NewUser builds a profile item for a fresh user id. createdAt is Unix
// milliseconds, matching the stored data.
func NewUser(id, name, email, passwordDigest string, createdAt int64) *User {
	key := store.UserKey(id)
	return &User{
		PK:             key.PK,
		SK:             key.SK,
		Name:           name,
		Email:          email,
		PasswordDigest: passwordDigest,
		CreatedAt:      createdAt,
	}
}

// ID recovers the user id from the partition key. The id is immutable: it
// only exists inside the key.
func (u *User) ID() string {
	return store.UserIDFromPK(u.PK)
}

// Key returns the item's table key.
func (u *User) Key() store.Key {
	return store.Key{PK: u.PK, SK: u.SK}
}
