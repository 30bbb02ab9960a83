package enforcement

import (
	"log"
	"sync"
	"time"
)

// RequestKind distinguishes the messages accepted by the service loop.
type RequestKind int

const (
	// RequestCheckAll sweeps every due record.
	RequestCheckAll RequestKind = iota
	// RequestCheckUser sweeps due records for one user in one guild.
	RequestCheckUser
	// RequestCheckEnforcement processes a single record.
	RequestCheckEnforcement
	// RequestShutdown terminates the loop.
	RequestShutdown
)

// CheckRequest is an out-of-band request into the service loop, used so that
// immediate actions do not have to wait for the next periodic tick.
type CheckRequest struct {
	Kind          RequestKind
	UserID        string
	GuildID       string
	EnforcementID string
}

const requestBuffer = 100

// Service orchestrates the store and the handler registry: it creates
// records, drives due records through execution and reversal, and runs the
// scheduling loop. One Start-ed goroutine owns the loop; every other method
// may be called from arbitrary goroutines.
type Service struct {
	store    *Store
	handlers *HandlerRegistry
	effector Effector
	interval time.Duration

	mu       sync.Mutex
	requests chan CheckRequest
	wg       sync.WaitGroup
}

// NewService creates a service around the given effector. The request
// channel is wired up by Start; notify calls made before then fail with
// ErrNoChannel.
func NewService(effector Effector, checkInterval time.Duration) *Service {
	return &Service{
		store:    NewStore(),
		handlers: NewHandlerRegistry(),
		effector: effector,
		interval: checkInterval,
	}
}

// Store exposes the record store for snapshots and status reporting.
func (s *Service) Store() *Store {
	return s.store
}

// Handlers exposes the registry so tests can substitute recording handlers.
func (s *Service) Handlers() *HandlerRegistry {
	return s.handlers
}

// CreateEnforcement creates and stores a pending record for the action.
func (s *Service) CreateEnforcement(warningID, userID, guildID string, action Action) *Record {
	record := NewRecord(warningID, userID, guildID, action)
	s.store.Add(record)
	log.Printf("[Enforcement] Created %s (%s) for user %s in guild %s, execute at %s",
		record.ID, action.Kind, userID, guildID, record.ExecuteAt.Format(time.RFC3339))
	return record
}

// ProcessEnforcement drives one record one step forward: a due pending
// record is executed, a due active record is reversed, anything else is a
// no-op. The state transition is committed before the platform call; an
// effector failure is logged and never rolls the transition back, so a
// retried sweep cannot double-apply a real-world action.
func (s *Service) ProcessEnforcement(id string) error {
	record, ok := s.store.Get(id)
	if !ok {
		return &NotFoundError{ID: id}
	}

	switch record.State {
	case StatePending:
		if !record.IsDueForExecution() {
			return nil
		}
		updated, err := s.store.ExecuteEnforcement(id)
		if err != nil {
			return err
		}
		if err := s.handlers.Execute(s.effector, updated.GuildID, updated.UserID, updated.Action); err != nil {
			log.Printf("[Enforcement] Failed to execute enforcement %s: %v", id, err)
		}
	case StateActive:
		if !record.IsDueForReversal() {
			return nil
		}
		updated, err := s.store.ReverseEnforcement(id)
		if err != nil {
			return err
		}
		if err := s.handlers.Reverse(s.effector, updated.GuildID, updated.UserID, updated.Action); err != nil {
			log.Printf("[Enforcement] Failed to reverse enforcement %s: %v", id, err)
		}
	}
	return nil
}

// CancelEnforcement terminates a record early. An active record's effect is
// reversed before the cancel transition — cancellation is an explicit undo
// request, so the real-world effect comes off first. A pending record is
// cancelled with no platform call.
func (s *Service) CancelEnforcement(id string) error {
	record, ok := s.store.Get(id)
	if !ok {
		return &NotFoundError{ID: id}
	}

	if record.State == StateActive {
		if err := s.handlers.Reverse(s.effector, record.GuildID, record.UserID, record.Action); err != nil {
			log.Printf("[Enforcement] Failed to reverse cancelled enforcement %s: %v", id, err)
		}
	}

	if _, err := s.store.CancelEnforcement(id); err != nil {
		return err
	}
	return nil
}

// CancelAllForUser cancels every pending and active record for a user in a
// guild, reversing the applied effects of active ones, and returns the
// cancelled records.
func (s *Service) CancelAllForUser(userID, guildID string) ([]*Record, error) {
	var cancelled []*Record

	// Active records first: their effects need reversing.
	for _, record := range s.store.GetActiveForUser(userID, guildID) {
		if err := s.CancelEnforcement(record.ID); err != nil {
			log.Printf("[Enforcement] Failed to cancel active enforcement %s: %v", record.ID, err)
			continue
		}
		if updated, ok := s.store.Get(record.ID); ok {
			cancelled = append(cancelled, updated)
		}
	}

	// Remaining pending records have applied nothing yet.
	cancelled = append(cancelled, s.store.CancelAllForUser(userID, guildID)...)
	return cancelled, nil
}

// CheckAllEnforcements sweeps every due record, executing due pending ones
// and reversing due active ones. A single record's failure is logged and the
// sweep continues.
func (s *Service) CheckAllEnforcements() {
	for _, id := range s.store.GetPendingForExecution() {
		if err := s.ProcessEnforcement(id); err != nil {
			log.Printf("[Enforcement] Failed to process pending enforcement %s: %v", id, err)
		}
	}
	for _, id := range s.store.GetActiveForReversal() {
		if err := s.ProcessEnforcement(id); err != nil {
			log.Printf("[Enforcement] Failed to process active enforcement %s: %v", id, err)
		}
	}
}

// CheckUserEnforcements sweeps due records for one user in one guild.
func (s *Service) CheckUserEnforcements(userID, guildID string) {
	for _, record := range s.store.GetPendingForUser(userID, guildID) {
		if record.IsDueForExecution() {
			if err := s.ProcessEnforcement(record.ID); err != nil {
				log.Printf("[Enforcement] Failed to process pending enforcement %s for user %s: %v", record.ID, userID, err)
			}
		}
	}
	for _, record := range s.store.GetActiveForUser(userID, guildID) {
		if record.IsDueForReversal() {
			if err := s.ProcessEnforcement(record.ID); err != nil {
				log.Printf("[Enforcement] Failed to process active enforcement %s for user %s: %v", record.ID, userID, err)
			}
		}
	}
}

// NotifyAboutUser asks the loop to check one user's records now.
func (s *Service) NotifyAboutUser(userID, guildID string) error {
	return s.send(CheckRequest{Kind: RequestCheckUser, UserID: userID, GuildID: guildID})
}

// NotifyAboutEnforcement asks the loop to check one record now.
func (s *Service) NotifyAboutEnforcement(id string) error {
	return s.send(CheckRequest{Kind: RequestCheckEnforcement, EnforcementID: id})
}

// NotifyCheckAll asks the loop to run a full sweep now.
func (s *Service) NotifyCheckAll() error {
	return s.send(CheckRequest{Kind: RequestCheckAll})
}

// Shutdown asks the loop to stop and waits until it has.
func (s *Service) Shutdown() error {
	if err := s.send(CheckRequest{Kind: RequestShutdown}); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

func (s *Service) send(req CheckRequest) error {
	s.mu.Lock()
	requests := s.requests
	s.mu.Unlock()
	if requests == nil {
		return ErrNoChannel
	}
	requests <- req
	return nil
}

// Start wires up the request channel and launches the scheduling loop in a
// background goroutine. The loop alternates between inbound requests and the
// periodic tick; both converge on the same due-record processing path.
func (s *Service) Start() {
	s.mu.Lock()
	if s.requests != nil {
		s.mu.Unlock()
		return
	}
	requests := make(chan CheckRequest, requestBuffer)
	s.requests = requests
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(requests)
}

func (s *Service) run(requests chan CheckRequest) {
	defer s.wg.Done()
	log.Printf("[Enforcement] Starting enforcement loop with %s interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case req := <-requests:
			switch req.Kind {
			case RequestCheckAll:
				log.Println("[Enforcement] Received request to check all enforcements")
				s.CheckAllEnforcements()
			case RequestCheckUser:
				log.Printf("[Enforcement] Received request to check user %s in guild %s", req.UserID, req.GuildID)
				s.CheckUserEnforcements(req.UserID, req.GuildID)
			case RequestCheckEnforcement:
				log.Printf("[Enforcement] Received request to check enforcement %s", req.EnforcementID)
				if err := s.ProcessEnforcement(req.EnforcementID); err != nil {
					log.Printf("[Enforcement] Error checking enforcement %s: %v", req.EnforcementID, err)
				}
			case RequestShutdown:
				log.Println("[Enforcement] Enforcement loop shutting down")
				return
			}
		case <-ticker.C:
			s.CheckAllEnforcements()
		}
	}
}
