// Package notify holds per-session notice queues that clients drain.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity bounds how many undelivered notices a session keeps
	DefaultCapacity = 20

	// DefaultIdleTTL is how long undrained notices outlive their last write
	DefaultIdleTTL = 10 * time.Minute

	// DefaultMaxSessions bounds how many sessions hold pending notices
	DefaultMaxSessions = 10000
)

type inbox struct {
	notices []domain.Notice
	touched time.Time
}

// Queue buffers notices per session. When a session's buffer is full the
// oldest notice is dropped. Sessions not written for idleTTL are forgotten,
// and when maxSessions are held the least recently written one is evicted.
type Queue struct {
	mu          sync.Mutex
	pending     map[string]*inbox
	capacity    int
	idleTTL     time.Duration
	maxSessions int
	lastSweep   time.Time
	now         func() time.Time
	logger      *zap.Logger
}

// NewQueue creates a queue holding up to capacity notices per session
func NewQueue(capacity int, logger *zap.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		pending:     make(map[string]*inbox),
		capacity:    capacity,
		idleTTL:     DefaultIdleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		logger:      logging.OrNop(logger),
	}
}

// Notify appends a notice for session
func (q *Queue) Notify(ctx context.Context, session string, notice domain.Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.sweep(now)

	box, ok := q.pending[session]
	if !ok {
		if len(q.pending) >= q.maxSessions {
			q.evictOldest()
		}
		box = &inbox{}
		q.pending[session] = box
	}

	list := append(box.notices, notice)
	if over := len(list) - q.capacity; over > 0 {
		list = append([]domain.Notice(nil), list[over:]...)
	}
	box.notices = list
	box.touched = now

	q.logger.Debug("notice queued",
		zap.String("session", session),
		zap.String("title", notice.Title),
		zap.String("variant", string(notice.Variant)))
}

// Drain returns and forgets the pending notices of session, oldest first
func (q *Queue) Drain(session string) []domain.Notice {
	q.mu.Lock()
	defer q.mu.Unlock()

	box, ok := q.pending[session]
	delete(q.pending, session)
	if !ok || box.notices == nil || q.now().Sub(box.touched) > q.idleTTL {
		return []domain.Notice{}
	}
	return box.notices
}

// sweep drops idle sessions at most once per idleTTL
func (q *Queue) sweep(now time.Time) {
	if now.Sub(q.lastSweep) <= q.idleTTL {
		return
	}
	for session, box := range q.pending {
		if now.Sub(box.touched) > q.idleTTL {
			delete(q.pending, session)
		}
	}
	q.lastSweep = now
}

func (q *Queue) evictOldest() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for session, box := range q.pending {
		if !found || box.touched.Before(at) {
			oldest, at, found = session, box.touched, true
		}
	}
	if found {
		delete(q.pending, oldest)
		q.logger.Debug("notice session evicted", zap.String("session", oldest))
	}
}

func (q *Queue) sessions() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
