package feed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Channel is the Postgres notification channel carrying collection names.
const Channel = "doc_changes"

// PGNotifier publishes through pg_notify so every instance listening on
// Channel sees the change, this one included.
type PGNotifier struct {
	db       *gorm.DB
	fallback *Broker
	log      *zap.Logger
}

func NewPGNotifier(db *gorm.DB, fallback *Broker, log *zap.Logger) *PGNotifier {
	return &PGNotifier{db: db, fallback: fallback, log: log}
}

func (n *PGNotifier) Publish(ctx context.Context, collection string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", Channel, collection).Error; err != nil {
		n.log.Warn("pg_notify failed, publishing locally",
			zap.String("collection", collection),
			zap.Error(err),
		)
		n.fallback.Publish(ctx, collection)
	}
}

// PGListener relays Channel notifications into a Broker, reconnecting with
// a fixed backoff until its context ends.
type PGListener struct {
	dsn     string
	broker  *Broker
	log     *zap.Logger
	backoff time.Duration
}

func NewPGListener(dsn string, broker *Broker, log *zap.Logger) *PGListener {
	return &PGListener{dsn: dsn, broker: broker, log: log, backoff: 2 * time.Second}
}

func (l *PGListener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.log.Warn("change listener disconnected", zap.Error(err), zap.Duration("retry_in", l.backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.backoff):
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return err
	}
	l.log.Info("listening for document changes", zap.String("channel", Channel))

	// Changes made while disconnected were never delivered.
	l.broker.PublishAll()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.broker.Publish(ctx, n.Payload)
	}
}
