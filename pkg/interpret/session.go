package interpret

import (
	"sync"
	"time"

	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

// Session is the interpretation state of a single user: the transactions recorded so far and
// the running weekly budget. All mutation goes through the Interpreter, which holds mu for the
// whole append-and-fold of a message.
type Session struct {
	mu      sync.Mutex
	userId  int
	ledger  *ledger.Ledger
	tracker *budget.Tracker
}

func NewSession(userId int, settings budget.Settings) *Session {
	return &Session{
		userId:  userId,
		ledger:  ledger.New(),
		tracker: budget.NewTracker(settings),
	}
}

func (s *Session) UserId() int {
	return s.userId
}

func (s *Session) Transactions() []expense.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transactions()
}

func (s *Session) Budget(now time.Time) budget.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Status(now)
}

// SeedFunc returns transactions recorded before the session was created, typically loaded from
// the persistence mirror. They count towards the weekly budget but cannot be undone.
type SeedFunc func(userId int) []expense.Transaction

// Registry hands out one Session per user, creating it on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[int]*Session
	settings budget.Settings
	seed     SeedFunc
}

func NewRegistry(settings budget.Settings, seed SeedFunc) *Registry {
	return &Registry{
		sessions: make(map[int]*Session),
		settings: settings,
		seed:     seed,
	}
}

// Session returns the session of userId. A new session is seeded outside the registry lock, so a
// slow seed only delays its own user; when two callers race, the first one stored wins.
func (r *Registry) Session(userId int) *Session {
	r.mu.Lock()
	s, ok := r.sessions[userId]
	r.mu.Unlock()
	if ok {
		return s
	}

	s = NewSession(userId, r.settings)
	if r.seed != nil {
		seeded := r.seed(userId)
		for _, tx := range seeded {
			s.tracker.Record(tx.Amount, tx.Timestamp)
		}
		log.Debugf("seeded session of user %d with %d transactions", userId, len(seeded))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[userId]; ok {
		return existing
	}
	r.sessions[userId] = s
	return s
}
