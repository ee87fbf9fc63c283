package services

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLocks serializes cart and order mutations per user. Concurrent requests
// for different users proceed in parallel; two placements for the same user
// cannot both read the cart before one deletes it.
type UserLocks struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[primitive.ObjectID]*sync.Mutex)}
}

// Lock acquires the mutex for userID and returns its unlock function.
func (l *UserLocks) Lock(userID primitive.ObjectID) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
