package store

import "strings"

// Single-table key layout. Every entity lives under its owner's user
// partition.
const (
	UserKeyPrefix  = "USER#"
	ProfileSortKey = "PROFILE"
	TaskKeyPrefix  = "TASK#"
	ResetKeyPrefix = "RESET#"
)

// UserKey addresses a user profile item.
func UserKey(userID string) Key {
	return Key{PK: UserKeyPrefix + userID, SK: ProfileSortKey}
}

// TaskKey addresses a task item under its owner.
func TaskKey(ownerID, taskID string) Key {
	return Key{PK: UserKeyPrefix + ownerID, SK: TaskKeyPrefix + taskID}
}

// ResetKey addresses a password reset code item under its user.
func ResetKey(userID, code string) Key {
	return Key{PK: UserKeyPrefix + userID, SK: ResetKeyPrefix + code}
}

// UserIDFromPK recovers the user id from a partition key.
func UserIDFromPK(pk string) string {
	return strings.TrimPrefix(pk, UserKeyPrefix)
}

// TaskIDFromSK recovers the task id from a sort key.
func TaskIDFromSK(sk string) string {
	return strings.TrimPrefix(sk, TaskKeyPrefix)
}
