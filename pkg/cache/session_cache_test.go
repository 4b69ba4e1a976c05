package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jumpa_withdrawal_back/models"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) add(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*MemoryStore, *clock) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = c.now
	return s, c
}

func TestSaveOverwritesPerUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)

	if err := s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, &models.WithdrawalSession{ID: "b", UserID: 7}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != "b" {
		t.Fatalf("expected newest session, got %s", got.ID)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 1, PinAttempts: 0})

	got, _, _ := s.Get(ctx, 1)
	got.PinAttempts = 2

	again, _, _ := s.Get(ctx, 1)
	if again.PinAttempts != 0 {
		t.Fatal("mutation leaked into the store without Save")
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(15 * time.Minute)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 1})

	c.add(14 * time.Minute)
	if _, ok, _ := s.Get(ctx, 1); !ok {
		t.Fatal("session should still be live")
	}
	c.add(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, 1); ok {
		t.Fatal("session should have expired")
	}
}

func TestDeleteOfExpiredSessionReportsFalse(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(time.Minute)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 1})
	c.add(2 * time.Minute)

	removed, err := s.Delete(ctx, 1)
	if err != nil || removed {
		t.Fatalf("removed=%v err=%v", removed, err)
	}
}

func TestConcurrentDeleteHasSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 9})

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Delete(ctx, 9); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(time.Minute)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "a", UserID: 1})
	c.add(30 * time.Second)
	_ = s.Save(ctx, &models.WithdrawalSession{ID: "b", UserID: 2})
	c.add(45 * time.Second)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if _, ok, _ := s.Get(ctx, 2); !ok {
		t.Fatal("user 2 session should survive")
	}
}

func TestReplaceOnlyWritesTheLiveSession(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Minute)

	stale := &models.WithdrawalSession{ID: "a", UserID: 7, PinAttempts: 1}
	if ok, err := s.Replace(ctx, stale); err != nil || ok {
		t.Fatalf("replace with nothing stored: ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, &models.WithdrawalSession{ID: "b", UserID: 7}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Replace(ctx, stale); ok {
		t.Fatal("replace overwrote a different session")
	}

	fresh := &models.WithdrawalSession{ID: "b", UserID: 7, PinAttempts: 1}
	if ok, err := s.Replace(ctx, fresh); err != nil || !ok {
		t.Fatalf("replace same session: ok=%v err=%v", ok, err)
	}
	got, _, _ := s.Get(ctx, 7)
	if got.PinAttempts != 1 {
		t.Fatalf("attempts not stored: %+v", got)
	}
}
