package mongostore

import (
	"context"
	"fmt"

	"github.com/teamdesk/teamdesk/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateSession starts a session with an open transaction, or returns
// a nil session when transactions are disabled. A non-nil session must
// reach exactly one of Commit or Abort.
func (s *Store) CreateSession(ctx context.Context) (mongo.Session, error) {
	if !s.transactions {
		return nil, nil
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return sess, nil
}

// Commit commits and releases the session. A nil session is a no-op so
// callers can commit unconditionally after every unit of work.
func (s *Store) Commit(ctx context.Context, sess mongo.Session) error {
	if sess == nil {
		return nil
	}
	defer sess.EndSession(ctx)
	if err := sess.CommitTransaction(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Abort rolls back and releases the session. A nil session is a no-op.
// Abort failures are logged, never returned: the error that triggered
// the abort is the one the caller must see.
func (s *Store) Abort(ctx context.Context, sess mongo.Session) {
	if sess == nil {
		return
	}
	defer sess.EndSession(ctx)
	if err := sess.AbortTransaction(ctx); err != nil {
		logger.FromContext(ctx).Warn("failed to abort transaction", "error", err)
	}
}

// WithSession runs fn inside the session when one is present, and
// standalone otherwise. The operation either fully participates in the
// transaction or not at all.
func WithSession(ctx context.Context, sess mongo.Session, fn func(ctx context.Context) error) error {
	if sess == nil {
		return fn(ctx)
	}
	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		return fn(sc)
	})
}
