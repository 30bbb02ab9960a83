package enforcement

import "fmt"

// ActionHandler applies and reverses one kind of enforcement action against
// the platform. Handlers for one-shot kinds implement Reverse as a no-op.
type ActionHandler interface {
	Execute(e Effector, guildID, userID string, action Action) error
	Reverse(e Effector, guildID, userID string, action Action) error
}

// HandlerRegistry maps each action kind to its handler.
type HandlerRegistry struct {
	handlers map[ActionKind]ActionHandler
}

// NewHandlerRegistry returns a registry with every kind registered.
func NewHandlerRegistry() *HandlerRegistry {
	r := &HandlerRegistry{handlers: make(map[ActionKind]ActionHandler)}
	r.Register(ActionNone, noopHandler{})
	r.Register(ActionMute, muteHandler{})
	r.Register(ActionBan, banHandler{})
	r.Register(ActionKick, kickHandler{})
	r.Register(ActionVoiceMute, voiceMuteHandler{})
	r.Register(ActionVoiceDeafen, voiceDeafenHandler{})
	r.Register(ActionVoiceDisconnect, voiceDisconnectHandler{})
	r.Register(ActionVoiceChannelHaunt, hauntHandler{})
	return r
}

// Register installs or replaces the handler for a kind. Tests substitute
// recording handlers through this.
func (r *HandlerRegistry) Register(kind ActionKind, handler ActionHandler) {
	r.handlers[kind] = handler
}

// Get returns the handler for a kind.
func (r *HandlerRegistry) Get(kind ActionKind) (ActionHandler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Execute dispatches the action to its handler's Execute.
func (r *HandlerRegistry) Execute(e Effector, guildID, userID string, action Action) error {
	h, ok := r.handlers[action.Kind]
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("no handler registered for action kind: %s", action.Kind)}
	}
	return h.Execute(e, guildID, userID, action)
}

// Reverse dispatches the action to its handler's Reverse.
func (r *HandlerRegistry) Reverse(e Effector, guildID, userID string, action Action) error {
	h, ok := r.handlers[action.Kind]
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("no handler registered for action kind: %s", action.Kind)}
	}
	return h.Reverse(e, guildID, userID, action)
}
