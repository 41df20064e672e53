package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// mockActivityRepo — репозиторий журнала в памяти.
type mockActivityRepo struct {
	mu        sync.Mutex
	items     []model.Activity
	insertErr error
	deletes   int
}

func (m *mockActivityRepo) Insert(_ context.Context, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	a.ID = int64(len(m.items) + 1)
	a.OccurredAt = time.Now()
	m.items = append(m.items, *a)
	return nil
}

func (m *mockActivityRepo) ListRecent(_ context.Context, username string, limit int) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if username == "" || m.items[i].Username == username {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *mockActivityRepo) DeleteBefore(context.Context, time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	return 0, nil
}

func TestActivityJournal_Record(t *testing.T) {
	repo := &mockActivityRepo{}
	j := NewActivityJournal(repo, testLogger())

	// Отменённый контекст запроса не мешает записи.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j.Record(ctx, model.Activity{Username: "admin", Action: "create", Resource: "blogs", Outcome: model.OutcomeSuccess})

	recent, err := j.Recent(context.Background(), "admin", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Resource != "blogs" {
		t.Errorf("Recent() = %+v", recent)
	}
	if !j.Enabled() {
		t.Error("ActivityJournal.Enabled() = false")
	}
}

func TestActivityJournal_RecordErrorIsSwallowed(t *testing.T) {
	repo := &mockActivityRepo{insertErr: errors.New("db down")}
	j := NewActivityJournal(repo, testLogger())

	j.Record(context.Background(), model.Activity{Username: "admin", Outcome: model.OutcomeFailure})

	if len(repo.items) != 0 {
		t.Error("при ошибке запись не должна появиться")
	}
}

func TestActivityJournal_RunRetention(t *testing.T) {
	repo := &mockActivityRepo{}
	j := NewActivityJournal(repo, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j.RunRetention(ctx, time.Hour, time.Hour)

	if repo.deletes != 1 {
		t.Errorf("DeleteBefore вызван %d раз, ожидается 1", repo.deletes)
	}
}

func TestNoopJournal(t *testing.T) {
	var j Journal = NoopJournal{}
	j.Record(context.Background(), model.Activity{})
	items, err := j.Recent(context.Background(), "", 10)
	if err != nil || len(items) != 0 || j.Enabled() {
		t.Errorf("NoopJournal: items=%v err=%v enabled=%v", items, err, j.Enabled())
	}
}
