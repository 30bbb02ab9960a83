package enforcement

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of an enforcement record.
//
// Legal transitions:
//
//	Pending -> Active (executed, reversal scheduled)
//	Pending -> Completed (executed, nothing to reverse)
//	Active  -> Reversed (reversal applied)
//	Pending -> Cancelled
//	Active  -> Cancelled
//
// Anything else fails with ErrInvalidStateTransition.
type State string

const (
	StatePending   State = "pending"
	StateActive    State = "active"
	StateReversed  State = "reversed"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// AllStates lists every lifecycle state, used for status summaries.
var AllStates = []State{StatePending, StateActive, StateReversed, StateCompleted, StateCancelled}

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateActive:
		return "Active"
	case StateReversed:
		return "Reversed"
	case StateCompleted:
		return "Completed"
	case StateCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Terminal reports whether the state accepts no further transitions.
func (s State) Terminal() bool {
	return s == StateReversed || s == StateCompleted || s == StateCancelled
}

// Record is one scheduled enforcement action and its lifecycle state.
// Action, UserID and GuildID are immutable after creation; all mutation goes
// through Execute, Reverse and Cancel (via the store's atomic transitions).
type Record struct {
	ID         string     `json:"id"`
	WarningID  string     `json:"warning_id"`
	UserID     string     `json:"user_id"`
	GuildID    string     `json:"guild_id"`
	Action     Action     `json:"action"`
	ExecuteAt  time.Time  `json:"execute_at"`
	ReverseAt  *time.Time `json:"reverse_at,omitempty"`
	State      State      `json:"state"`
	CreatedAt  time.Time  `json:"created_at"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	ReversedAt *time.Time `json:"reversed_at,omitempty"`
}

// NewRecord creates a pending record for the given action. The execution
// time is derived from the action's delay semantics.
func NewRecord(warningID, userID, guildID string, action Action) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		WarningID: warningID,
		UserID:    userID,
		GuildID:   guildID,
		Action:    action,
		ExecuteAt: calculateExecuteTime(action, now),
		State:     StatePending,
		CreatedAt: now,
	}
}

// calculateExecuteTime applies the per-kind delay policy: kick and voice
// disconnect treat Duration as a pre-execution delay, haunt delays its first
// relocation by the interval, everything else executes immediately.
func calculateExecuteTime(action Action, now time.Time) time.Time {
	switch action.Kind {
	case ActionKick, ActionVoiceDisconnect:
		if action.Params.HasDuration() {
			return now.Add(time.Duration(action.Params.DurationOrDefault()) * time.Second)
		}
	case ActionVoiceChannelHaunt:
		if action.Haunt != nil && action.Haunt.IntervalSeconds != nil && *action.Haunt.IntervalSeconds > 0 {
			return now.Add(time.Duration(*action.Haunt.IntervalSeconds) * time.Second)
		}
	}
	return now
}

// calculateReversalTime returns when the applied effect should be undone,
// or nil for actions that never need reversal.
func (r *Record) calculateReversalTime(now time.Time) *time.Time {
	if !r.Action.NeedsReversal() {
		return nil
	}
	at := now.Add(time.Duration(r.Action.Params.DurationOrDefault()) * time.Second)
	return &at
}

// Execute transitions the record from Pending to Active (when the action
// needs reversal) or Completed. ReverseAt is populated here and never before.
func (r *Record) Execute() error {
	if r.State != StatePending {
		return ErrInvalidStateTransition
	}

	now := time.Now().UTC()
	r.ReverseAt = r.calculateReversalTime(now)
	if r.ReverseAt != nil {
		r.State = StateActive
	} else {
		r.State = StateCompleted
	}
	r.ExecutedAt = &now

	log.Printf("[Enforcement] Executed %s (%s) for user %s in guild %s, state=%s",
		r.ID, r.Action.Kind, r.UserID, r.GuildID, r.State)
	return nil
}

// Reverse transitions the record from Active to Reversed.
func (r *Record) Reverse() error {
	if r.State != StateActive {
		return ErrInvalidStateTransition
	}

	now := time.Now().UTC()
	r.State = StateReversed
	r.ReversedAt = &now

	log.Printf("[Enforcement] Reversed %s (%s) for user %s in guild %s",
		r.ID, r.Action.Kind, r.UserID, r.GuildID)
	return nil
}

// Cancel transitions the record from Pending or Active to Cancelled. It does
// not undo any applied effect; the service reverses Active records before
// calling this.
func (r *Record) Cancel() error {
	if r.State != StatePending && r.State != StateActive {
		return ErrInvalidStateTransition
	}

	r.State = StateCancelled

	log.Printf("[Enforcement] Cancelled %s (%s) for user %s in guild %s",
		r.ID, r.Action.Kind, r.UserID, r.GuildID)
	return nil
}

// IsDueForExecution reports whether the record is pending and its execution
// time has passed.
func (r *Record) IsDueForExecution() bool {
	return r.State == StatePending && !r.ExecuteAt.After(time.Now())
}

// IsDueForReversal reports whether the record is active and its reversal
// time has passed.
func (r *Record) IsDueForReversal() bool {
	return r.State == StateActive && r.ReverseAt != nil && !r.ReverseAt.After(time.Now())
}

// Clone returns an owned copy of the record. Query operations return clones
// so callers never hold live references across the store's lock boundary.
func (r *Record) Clone() *Record {
	c := *r
	c.Action = cloneAction(r.Action)
	c.ReverseAt = cloneTime(r.ReverseAt)
	c.ExecutedAt = cloneTime(r.ExecutedAt)
	c.ReversedAt = cloneTime(r.ReversedAt)
	return &c
}

func cloneAction(a Action) Action {
	if a.Params != nil {
		params := *a.Params
		if params.Duration != nil {
			d := *params.Duration
			params.Duration = &d
		}
		a.Params = &params
	}
	if a.Haunt != nil {
		haunt := *a.Haunt
		if haunt.TeleportCount != nil {
			v := *haunt.TeleportCount
			haunt.TeleportCount = &v
		}
		if haunt.IntervalSeconds != nil {
			v := *haunt.IntervalSeconds
			haunt.IntervalSeconds = &v
		}
		if haunt.ReturnToOrigin != nil {
			v := *haunt.ReturnToOrigin
			haunt.ReturnToOrigin = &v
		}
		a.Haunt = &haunt
	}
	return a
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
