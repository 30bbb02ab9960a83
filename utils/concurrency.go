package utils

import (
	"sync"
	"time"
)

var (
	warnLocks = make(map[string]time.Time)
	warnMutex = &sync.Mutex{}
)

const warnLockDuration = 10 * time.Second

// CheckAndSetWarnLock guards against two moderators warning the same user at
// the same moment, which would double-count the escalation tally.
// If not locked, it sets a new lock and returns true.
// If locked, it returns false.
func CheckAndSetWarnLock(userID string) bool {
	warnMutex.Lock()
	defer warnMutex.Unlock()

	if lastWarnTime, ok := warnLocks[userID]; ok {
		if time.Since(lastWarnTime) < warnLockDuration {
			return false // Locked
		}
	}

	warnLocks[userID] = time.Now()
	return true // Not locked, new lock set
}
