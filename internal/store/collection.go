package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/feed"
)

var ErrNotFound = errors.New("store: document not found")

// Document is any model with a store-assigned string id.
type Document interface {
	DocumentID() string
}

// Query is a one-shot or live read predicate. Where keys are column names.
type Query struct {
	Where   map[string]any
	Range   *Range
	OrderBy string
	Limit   int
}

// Range keeps rows whose Field is in [From, To).
type Range struct {
	Field string
	From  time.Time
	To    time.Time
}

type Option[T Document] func(*Collection[T])

// WithNormalizer runs fn on every document read from the collection.
func WithNormalizer[T Document](fn func(*T)) Option[T] {
	return func(c *Collection[T]) { c.normalize = fn }
}

// Collection is a named set of documents of type T with point reads,
// merge-writes and live queries.
type Collection[T Document] struct {
	db        *gorm.DB
	name      string
	changes   *feed.Broker
	publisher feed.Publisher
	log       *zap.Logger
	normalize func(*T)
}

// NewCollection reads change signals from changes and announces writes
// through publisher, which may be changes itself for a single instance.
func NewCollection[T Document](
	db *gorm.DB,
	name string,
	changes *feed.Broker,
	publisher feed.Publisher,
	log *zap.Logger,
	opts ...Option[T],
) *Collection[T] {
	c := &Collection[T]{
		db:        db,
		name:      name,
		changes:   changes,
		publisher: publisher,
		log:       log.With(zap.String("collection", name)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) Name() string {
	return c.name
}

// DB exposes the handle for callers that need their own transaction; they
// must call Notify after committing.
func (c *Collection[T]) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c *Collection[T]) Notify(ctx context.Context) {
	c.publisher.Publish(ctx, c.name)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	c.apply(&doc)
	return &doc, nil
}

func (c *Collection[T]) Query(ctx context.Context, q Query) ([]T, error) {
	tx := c.db.WithContext(ctx).Model(new(T))
	if len(q.Where) > 0 {
		tx = tx.Where(q.Where)
	}
	if q.Range != nil {
		tx = tx.Where(q.Range.Field+" >= ? AND "+q.Range.Field+" < ?", q.Range.From, q.Range.To)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	docs := []T{}
	if err := tx.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", c.name, err)
	}
	for i := range docs {
		c.apply(&docs[i])
	}
	return docs, nil
}

// Insert creates doc and returns its assigned id.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) (string, error) {
	if err := c.db.WithContext(ctx).Create(doc).Error; err != nil {
		return "", fmt.Errorf("insert %s: %w", c.name, err)
	}
	c.Notify(ctx)
	return (*doc).DocumentID(), nil
}

// Upsert merges fields into the document with id, creating it when absent.
// Columns missing from fields keep their stored value.
func (c *Collection[T]) Upsert(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("upsert %s: empty id", c.name)
	}

	now := time.Now()
	patch := maps.Clone(fields)
	if patch == nil {
		patch = map[string]any{}
	}
	delete(patch, "id")
	delete(patch, "created_at")
	patch["updated_at"] = now

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.Model(new(T)).Where("id = ?", id).Updates(patch).Error
		}
		patch["id"] = id
		patch["created_at"] = now
		return tx.Model(new(T)).Create(patch).Error
	})
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", c.name, id, err)
	}

	c.Notify(ctx)
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.Notify(ctx)
	return nil
}

// Subscribe emits the result of q now and again after every change to the
// collection, until ctx ends. Only the latest snapshot is kept for a slow
// reader. A failed read emits an empty snapshot.
func (c *Collection[T]) Subscribe(ctx context.Context, q Query) <-chan []T {
	out := make(chan []T, 1)
	signals, cancel := c.changes.Subscribe(c.name)

	go func() {
		defer close(out)
		defer cancel()

		for {
			snap := c.snapshot(ctx, q)
			if ctx.Err() != nil {
				return
			}
			feed.Offer(out, snap)

			select {
			case <-ctx.Done():
				return
			case <-signals:
			}
		}
	}()

	return out
}

func (c *Collection[T]) snapshot(ctx context.Context, q Query) []T {
	docs, err := c.Query(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Warn("live query failed, emitting empty snapshot", zap.Error(err))
		}
		return []T{}
	}
	return docs
}

func (c *Collection[T]) apply(doc *T) {
	if c.normalize != nil {
		c.normalize(doc)
	}
}
