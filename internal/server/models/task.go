package models

import "github.com/taskboard-dev/taskboard/internal/server/store"

// Task is a task item: PK "USER#<ownerId>", SK "TASK#<id>". Task id and
// owner id are immutable once created.
type Task struct {
	PK          string `dynamodbav:"PK" json:"-"`
	SK          string `dynamodbav:"SK" json:"-"`
	TaskID      string `dynamodbav:"taskId" json:"taskId"`
	Title       string `dynamodbav:"title" json:"title"`
	Description string `dynamodbav:"description" json:"description"`
	Done        bool   `dynamodbav:"done" json:"done"`
	CreatedAt   int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// NewTask builds a task item owned by ownerID. New tasks always start not
// done.
func NewTask(ownerID, taskID, title, description string, createdAt int64) *Task {
	key := store.TaskKey(ownerID, taskID)
	return &Task{
		PK:          key.PK,
		SK:          key.SK,
		TaskID:      taskID,
		Title:       title,
		Description: description,
		Done:        false,
		CreatedAt:   createdAt,
	}
}

// OwnerID recovers the owning user id from the partition key.
func (t *Task) OwnerID() string {
	return store.UserIDFromPK(t.PK)
}

// Key returns the item's table key.
func (t *Task) Key() store.Key {
	return store.Key{PK: t.PK, SK: t.SK}
}
