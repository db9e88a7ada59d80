package generator

import (
	"sync"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/shared/id"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"go.uber.org/zap"
)

// Subscriber observes committed mutations with the resulting state.
// The state is shared between subscribers and must not be modified.
type Subscriber func(m Mutation, state types.State)

type notification struct {
	mutation Mutation
	state    types.State
}

// Store holds the workflow state of one session
type Store struct {
	mu          sync.Mutex
	state       types.State           // Protected by mu
	subscribers map[uint64]Subscriber // Protected by mu
	nextSubID   uint64                // Protected by mu
	pending     []notification        // Protected by mu
	draining    bool                  // Protected by mu

	sessionID id.SessionID
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewStore creates a store holding the initial state
func NewStore(logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := id.NewSessionID()
	return &Store{
		state:       types.NewState(),
		subscribers: make(map[uint64]Subscriber),
		sessionID:   sessionID,
		logger:      logger.Named("store").WithSession(sessionID.String()),
	}
}

// WithMetrics adds metrics tracking to the store
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// SessionID identifies the session this store belongs to
func (s *Store) SessionID() id.SessionID {
	return s.sessionID
}

// State returns a deep copy of the current state
func (s *Store) State() types.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Commit applies one mutation and notifies subscribers in commit order
func (s *Store) Commit(m Mutation) {
	s.mu.Lock()
	m.apply(&s.state)
	icons := len(s.state.Icons)
	s.pending = append(s.pending, notification{mutation: m, state: s.state.Clone()})
	if s.draining {
		// the goroutine already draining delivers this one
		s.mu.Unlock()
		s.record(m, icons)
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.record(m, icons)
	s.drain()
}

// Subscribe registers fn for every future commit. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	subID := s.nextSubID
	s.nextSubID++
	s.subscribers[subID] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, subID)
			s.mu.Unlock()
		})
	}
}

func (s *Store) record(m Mutation, icons int) {
	s.logger.Debug("mutation committed",
		zap.String("mutation", m.Kind().String()),
		zap.Int("icons", icons),
	)
	if s.metrics != nil {
		s.metrics.RecordMutation(m.Kind().String(), icons)
	}
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		n := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]Subscriber, 0, len(s.subscribers))
		for _, fn := range s.subscribers {
			subs = append(subs, fn)
		}
		s.mu.Unlock()

		for _, fn := range subs {
			s.deliver(fn, n)
		}
	}
}

// deliver isolates one subscriber so a panic neither stalls the drain
// queue nor starves the remaining subscribers
func (s *Store) deliver(fn Subscriber, n notification) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("subscriber panicked",
				zap.String("mutation", n.mutation.Kind().String()),
				zap.Any("panic", r),
			)
		}
	}()
	fn(n.mutation, n.state)
}
