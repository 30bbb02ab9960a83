package enforcement

import (
	"sync"
	"time"
)

// fakeEffector records every platform call and can be told to fail specific
// operations.
type fakeEffector struct {
	mu          sync.Mutex
	calls       map[string]int
	failOps     map[string]error
	voiceList   []string
	userChannel string
	moves       []string
}

func newFakeEffector() *fakeEffector {
	return &fakeEffector{
		calls:       make(map[string]int),
		failOps:     make(map[string]error),
		voiceList:   []string{"vc-1", "vc-2", "vc-3"},
		userChannel: "vc-1",
	}
}

func (f *fakeEffector) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.failOps[op]
}

func (f *fakeEffector) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeEffector) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOps[op] = err
}

func (f *fakeEffector) Timeout(_, _ string, _ time.Time, _ string) error {
	return f.record("timeout")
}

func (f *fakeEffector) RemoveTimeout(_, _ string) error {
	return f.record("remove_timeout")
}

func (f *fakeEffector) Ban(_, _, _ string) error {
	return f.record("ban")
}

func (f *fakeEffector) Unban(_, _ string) error {
	return f.record("unban")
}

func (f *fakeEffector) Kick(_, _, _ string) error {
	return f.record("kick")
}

func (f *fakeEffector) SetVoiceMute(_, _ string, mute bool) error {
	if mute {
		return f.record("voice_mute")
	}
	return f.record("voice_unmute")
}

func (f *fakeEffector) SetVoiceDeafen(_, _ string, deafen bool) error {
	if deafen {
		return f.record("voice_deafen")
	}
	return f.record("voice_undeafen")
}

func (f *fakeEffector) DisconnectVoice(_, _ string) error {
	return f.record("disconnect")
}

func (f *fakeEffector) MoveToVoiceChannel(_, _, channelID string) error {
	f.mu.Lock()
	f.moves = append(f.moves, channelID)
	f.mu.Unlock()
	return f.record("move")
}

func (f *fakeEffector) VoiceChannels(_ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.voiceList...), nil
}

func (f *fakeEffector) UserVoiceChannel(_, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userChannel == "" {
		return "", ErrNotInVoiceChannel
	}
	return f.userChannel, nil
}

// recordingHandler counts execute/reverse dispatches for one kind.
type recordingHandler struct {
	mu       sync.Mutex
	executed int
	reversed int
	execErr  error
}

func (h *recordingHandler) Execute(_ Effector, _, _ string, _ Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.executed++
	return h.execErr
}

func (h *recordingHandler) Reverse(_ Effector, _, _ string, _ Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reversed++
	return nil
}

func (h *recordingHandler) counts() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.executed, h.reversed
}
