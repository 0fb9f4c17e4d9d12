package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/feed"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type note struct {
	models.Base

	Owner string `gorm:"size:64"`
	Body  string `gorm:"size:255"`
	At    time.Time
}

type orphan struct {
	models.Base
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newNotes(t *testing.T, opts ...Option[note]) *Collection[note] {
	broker := feed.NewBroker()
	return NewCollection(openTestDB(t), "notes", broker, broker, zap.NewNop(), opts...)
}

func TestCollection_InsertGetDelete(t *testing.T) {
	ctx := context.Background()
	c := newNotes(t)

	id, err := c.Insert(ctx, &note{Owner: "u1", Body: "hello"})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id == "" {
		t.Fatal("expected an assigned id")
	}

	got, err := c.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Body != "hello" {
		t.Fatalf("Body = %q, want hello", got.Body)
	}

	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := c.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := c.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestCollection_UpsertMerges(t *testing.T) {
	ctx := context.Background()
	c := newNotes(t)

	if err := c.Upsert(ctx, "n1", map[string]any{"owner": "u1", "body": "first", "at": time.Now()}); err != nil {
		t.Fatalf("Upsert create error: %v", err)
	}
	if err := c.Upsert(ctx, "n1", map[string]any{"body": "second"}); err != nil {
		t.Fatalf("Upsert merge error: %v", err)
	}

	got, err := c.Get(ctx, "n1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Owner != "u1" || got.Body != "second" {
		t.Fatalf("merged doc = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not set on create")
	}
}

func TestCollection_QueryFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	c := newNotes(t)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, owner := range []string{"u1", "u2", "u1", "u1"} {
		if _, err := c.Insert(ctx, &note{Owner: owner, Body: string(rune('a' + i)), At: base.Add(time.Duration(3-i) * time.Hour)}); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}

	got, err := c.Query(ctx, Query{
		Where:   map[string]any{"owner": "u1"},
		Range:   &Range{Field: "at", From: base, To: base.Add(3 * time.Hour)},
		OrderBy: "at ASC",
	})
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}

	var bodies []string
	for _, n := range got {
		bodies = append(bodies, n.Body)
	}
	// "a" sits at base+3h, outside the half-open range.
	if strings.Join(bodies, ",") != "d,c" {
		t.Fatalf("bodies = %v, want [d c]", bodies)
	}
}

func TestCollection_NormalizerRunsOnReads(t *testing.T) {
	ctx := context.Background()
	c := newNotes(t, WithNormalizer(func(n *note) { n.Body = strings.ToUpper(n.Body) }))

	id, err := c.Insert(ctx, &note{Body: "quiet"})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	got, err := c.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Body != "QUIET" {
		t.Fatalf("Body = %q, want QUIET", got.Body)
	}
}

func TestCollection_SubscribeSeesWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := newNotes(t)

	live := c.Subscribe(ctx, Query{Where: map[string]any{"owner": "u1"}})

	first := receive(t, live)
	if len(first) != 0 {
		t.Fatalf("initial snapshot = %v, want empty", first)
	}

	if _, err := c.Insert(ctx, &note{Owner: "u1", Body: "x"}); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	waitFor(t, live, func(s []note) bool { return len(s) == 1 })

	cancel()
	for range live {
	}
}

func TestCollection_SubscribeEmitsEmptyOnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := feed.NewBroker()
	c := NewCollection[orphan](openTestDB(t), "orphans", broker, broker, zap.NewNop())

	snap := receive(t, c.Subscribe(ctx, Query{}))
	if snap == nil || len(snap) != 0 {
		t.Fatalf("snapshot = %#v, want empty non-nil", snap)
	}
}

func receive[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("stream closed")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

func waitFor[T any](t *testing.T, ch <-chan []T, ok func([]T) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, open := <-ch:
			if !open {
				t.Fatal("stream closed")
			}
			if ok(v) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching snapshot")
		}
	}
}
