package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecorderPersistsScheduledRecords(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store)

	ok := recorder.Schedule(&Record{
		Operation: OpImportCatalog,
		Username:  "ada",
		Result:    ResultSuccess,
	})
	if !ok {
		t.Fatal("schedule should accept the record")
	}
	recorder.Close()

	records, total, err := store.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 record, got %d", total)
	}
	got := records[0]
	if got.Operation != OpImportCatalog || got.Username != "ada" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Source != Source {
		t.Fatalf("source should default to %q, got %q", Source, got.Source)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be stamped on schedule")
	}
}

func TestRecorderScheduleDoesNotMutateCallerRecord(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store)
	defer recorder.Close()

	record := &Record{Operation: OpLogin, Username: "ada"}
	recorder.Schedule(record)

	if record.Source != "" || !record.CreatedAt.IsZero() {
		t.Fatalf("caller record must stay untouched, got %+v", record)
	}
}

type blockingStore struct {
	MemoryStore
	release chan struct{}
	once    sync.Once
}

func (b *blockingStore) Insert(ctx context.Context, record *Record) (*Record, error) {
	b.once.Do(func() { <-b.release })
	return b.MemoryStore.Insert(ctx, record)
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	store := &blockingStore{release: make(chan struct{})}
	recorder := NewRecorder(store, WithQueueSize(1))

	// The first record occupies the blocked worker; subsequent records fill
	// the queue until Schedule reports a drop.
	recorder.Schedule(&Record{Operation: OpLogin, Username: "a"})
	deadline := time.Now().Add(time.Second)
	dropped := false
	for time.Now().Before(deadline) {
		if !recorder.Schedule(&Record{Operation: OpLogin, Username: "b"}) {
			dropped = true
			break
		}
	}
	if !dropped {
		t.Fatal("expected a drop once the queue filled")
	}

	close(store.release)
	recorder.Close()
}

func TestRecorderRejectsScheduleAfterClose(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store)
	recorder.Close()

	if recorder.Schedule(&Record{Operation: OpLogin, Username: "ada"}) {
		t.Fatal("schedule after close should report a drop")
	}
	// Close stays idempotent.
	recorder.Close()

	if count, _ := store.Count(context.Background()); count != 0 {
		t.Fatalf("closed recorder must not persist records, got %d", count)
	}
}

type failingStore struct {
	MemoryStore
}

func (f *failingStore) Insert(context.Context, *Record) (*Record, error) {
	return nil, errors.New("disk full")
}

func TestRecorderSwallowsStoreFailures(t *testing.T) {
	recorder := NewRecorder(&failingStore{})
	if !recorder.Schedule(&Record{Operation: OpLogin, Username: "ada"}) {
		t.Fatal("schedule should accept the record")
	}
	// Close must not hang or panic on a failing store.
	recorder.Close()
}

type captureSink struct {
	mu      sync.Mutex
	records []*Record
}

func (c *captureSink) Record(_ context.Context, record *Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
	return nil
}

func TestRecorderFansOutToSinks(t *testing.T) {
	store := NewMemoryStore()
	sink := &captureSink{}
	recorder := NewRecorder(store, WithSink(sink))

	recorder.Schedule(&Record{Operation: OpMergeCatalog, Username: "ada", Result: ResultSuccess})
	recorder.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.records) != 1 || sink.records[0].Operation != OpMergeCatalog {
		t.Fatalf("sink should observe the stored record, got %v", sink.records)
	}
}

func TestMemoryStoreFiltersAndRetention(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	projectID := uuid.New()

	old := time.Now().Add(-48 * time.Hour)
	if _, err := store.Insert(ctx, &Record{Operation: OpLogin, Username: "ada", CreatedAt: old}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.Insert(ctx, &Record{Operation: OpAddKey, Username: "grace", ProjectID: projectID}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	records, total, err := store.List(ctx, ListOptions{ProjectID: projectID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || records[0].Username != "grace" {
		t.Fatalf("project filter failed: %v", records)
	}

	if _, total, _ = store.List(ctx, ListOptions{Operation: OpLogin}); total != 1 {
		t.Fatalf("operation filter failed, total=%d", total)
	}
	if _, total, _ = store.List(ctx, ListOptions{Keyword: "gra"}); total != 1 {
		t.Fatalf("keyword filter failed, total=%d", total)
	}

	dropped, err := store.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("retention delete failed: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", dropped)
	}
	if count, _ := store.Count(ctx); count != 1 {
		t.Fatalf("expected 1 remaining record, got %d", count)
	}

	cleared, err := store.Clear(ctx, uuid.Nil)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared record, got %d", cleared)
	}
}
