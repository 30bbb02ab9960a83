package enforcement

import (
	"sync"
	"time"
)

// Store is the concurrent keyed repository of enforcement records. All
// mutation happens through the atomic transition operations; reads return
// cloned snapshots so no caller ever holds a live record across the lock.
// Transitions are pure in-memory work — the store never holds its lock
// across an effector call.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Add inserts a record. The caller guarantees a globally unique id.
func (s *Store) Add(record *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record.Clone()
}

// Get returns a snapshot of the record with the given id.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// GetAll returns snapshots of every record.
func (s *Store) GetAll() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record.Clone())
	}
	return out
}

// GetForUser returns snapshots of all records for a user in a guild.
func (s *Store) GetForUser(userID, guildID string) []*Record {
	return s.filter(func(r *Record) bool {
		return r.UserID == userID && r.GuildID == guildID
	})
}

// GetPendingForUser returns a user's pending records in a guild.
func (s *Store) GetPendingForUser(userID, guildID string) []*Record {
	return s.filter(func(r *Record) bool {
		return r.UserID == userID && r.GuildID == guildID && r.State == StatePending
	})
}

// GetActiveForUser returns a user's active records in a guild.
func (s *Store) GetActiveForUser(userID, guildID string) []*Record {
	return s.filter(func(r *Record) bool {
		return r.UserID == userID && r.GuildID == guildID && r.State == StateActive
	})
}

// GetByState returns snapshots of all records in the given state.
func (s *Store) GetByState(state State) []*Record {
	return s.filter(func(r *Record) bool {
		return r.State == state
	})
}

func (s *Store) filter(keep func(*Record) bool) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, record := range s.records {
		if keep(record) {
			out = append(out, record.Clone())
		}
	}
	return out
}

// GetPendingForExecution returns the ids of pending records whose execution
// time has passed. Used by the sweep loop.
func (s *Store) GetPendingForExecution() []string {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, record := range s.records {
		if record.State == StatePending && !record.ExecuteAt.After(now) {
			ids = append(ids, record.ID)
		}
	}
	return ids
}

// GetActiveForReversal returns the ids of active records whose reversal time
// has passed.
func (s *Store) GetActiveForReversal() []string {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, record := range s.records {
		if record.State == StateActive && record.ReverseAt != nil && !record.ReverseAt.After(now) {
			ids = append(ids, record.ID)
		}
	}
	return ids
}

// CountByState returns record counts per state, for status reporting.
func (s *Store) CountByState() map[State]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[State]int, len(AllStates))
	for _, record := range s.records {
		counts[record.State]++
	}
	return counts
}

// ExecuteEnforcement atomically applies the Pending -> Active/Completed
// transition and returns a snapshot of the updated record.
func (s *Store) ExecuteEnforcement(id string) (*Record, error) {
	return s.transition(id, (*Record).Execute)
}

// ReverseEnforcement atomically applies the Active -> Reversed transition
// and returns a snapshot of the updated record.
func (s *Store) ReverseEnforcement(id string) (*Record, error) {
	return s.transition(id, (*Record).Reverse)
}

// CancelEnforcement atomically applies the Pending/Active -> Cancelled
// transition and returns a snapshot of the updated record.
func (s *Store) CancelEnforcement(id string) (*Record, error) {
	return s.transition(id, (*Record).Cancel)
}

// transition serializes state changes per record: concurrent calls for the
// same id see exactly one successful transition, the rest fail with
// ErrInvalidStateTransition.
func (s *Store) transition(id string, op func(*Record) error) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if err := op(record); err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// CancelAllForUser cancels every pending or active record for a user in a
// guild and returns snapshots of the cancelled records. Reversal of any
// applied effects is the caller's responsibility.
func (s *Store) CancelAllForUser(userID, guildID string) []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cancelled []*Record
	for _, record := range s.records {
		if record.UserID != userID || record.GuildID != guildID {
			continue
		}
		if record.State != StatePending && record.State != StateActive {
			continue
		}
		if err := record.Cancel(); err == nil {
			cancelled = append(cancelled, record.Clone())
		}
	}
	return cancelled
}

// Restore loads previously persisted records, replacing any with the same
// id. Used once at startup before the service loop starts.
func (s *Store) Restore(records []*Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.records[record.ID] = record.Clone()
	}
}
