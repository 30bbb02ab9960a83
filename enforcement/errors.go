package enforcement

import (
	"errors"
	"fmt"
)

// ErrInvalidStateTransition is returned when a record is asked to execute,
// reverse or cancel outside its legal source state. The record is left
// unchanged.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrNotInVoiceChannel is returned when a voice action targets a user who is
// not currently in any voice channel.
var ErrNotInVoiceChannel = errors.New("user not in a voice channel")

// ErrNoChannel is returned when a notify call is made before the service's
// request channel has been wired up by Start.
var ErrNoChannel = errors.New("enforcement request channel not available")

// NotFoundError indicates an unknown enforcement id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("enforcement not found: %s", e.ID)
}

// ValidationError indicates an action payload that does not match the
// handler it was dispatched to. Defensive: the taxonomy is closed, so this
// should not occur at runtime.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action validation failed: %s", e.Reason)
}

// NoVoiceChannelsError indicates a guild with no voice channels to haunt
// through.
type NoVoiceChannelsError struct {
	GuildID string
}

func (e *NoVoiceChannelsError) Error() string {
	return fmt.Sprintf("no voice channels in guild: %s", e.GuildID)
}

// EffectorError wraps a failure from the moderation platform call.
type EffectorError struct {
	Op  string
	Err error
}

func (e *EffectorError) Error() string {
	return fmt.Sprintf("effector %s failed: %v", e.Op, e.Err)
}

func (e *EffectorError) Unwrap() error {
	return e.Err
}
