package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

const DefaultSessionTTL = 15 * time.Minute

// SessionStore keeps at most one withdrawal session per user.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*models.WithdrawalSession, bool, error)
	Save(ctx context.Context, s *models.WithdrawalSession) error
	// Replace saves s only while the stored live session has the same ID,
	// so a session taken by another caller is never written back.
	Replace(ctx context.Context, s *models.WithdrawalSession) (bool, error)
	// Delete reports whether a live session was removed. Only one of
	// several concurrent callers for the same user observes true.
	Delete(ctx context.Context, userID int64) (bool, error)
}

// MemoryStore is process-local; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]models.WithdrawalSession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		sessions: make(map[int64]models.WithdrawalSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy so callers can mutate it freely before Save.
func (m *MemoryStore) Get(_ context.Context, userID int64) (*models.WithdrawalSession, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	if s.Expired(m.now()) {
		delete(m.sessions, userID)
		logrus.WithFields(logrus.Fields{"telegram_id": userID, "session_id": s.ID}).Info("withdrawal session expired")
		return nil, false, nil
	}
	return &s, true, nil
}

// Save overwrites any existing session for the user and pushes its expiry forward.
func (m *MemoryStore) Save(_ context.Context, s *models.WithdrawalSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.ExpiresAt = now.Add(m.ttl)
	m.sessions[s.UserID] = *s
	return nil
}

func (m *MemoryStore) Replace(_ context.Context, s *models.WithdrawalSession) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.sessions[s.UserID]
	now := m.now()
	if !ok || cur.ID != s.ID || cur.Expired(now) {
		return false, nil
	}
	s.ExpiresAt = now.Add(m.ttl)
	m.sessions[s.UserID] = *s
	return true, nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return false, nil
	}
	delete(m.sessions, userID)
	return !s.Expired(m.now()), nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep on every tick until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				logrus.Infof("swept %d expired withdrawal sessions", n)
			}
		}
	}
}
