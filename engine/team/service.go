package team

import (
	"context"

	"github.com/teamdesk/teamdesk/engine/core"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"github.com/teamdesk/teamdesk/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository defines the data access operations the service
// orchestrates.
type Repository interface {
	Create(ctx context.Context, data *Input, opts *core.Options) (*Team, error)
	Update(ctx context.Context, id string, data *Input, opts *core.Options) (*Team, error)
	Destroy(ctx context.Context, id string, opts *core.Options) error
	FindByID(ctx context.Context, id string, opts *core.Options) (*Team, error)
	FindAndCountAll(ctx context.Context, q *ListQuery, opts *core.Options) (*ListResult, error)
	FindAllAutocomplete(ctx context.Context, search string, limit int64, opts *core.Options) ([]core.AutocompleteItem, error)
	FilterIDs(ctx context.Context, ids []string, opts *core.Options) ([]string, error)
	Count(ctx context.Context, filter bson.M, opts *core.Options) (int64, error)
	AddMembers(ctx context.Context, teamID string, memberIDs []string, opts *core.Options) (*Team, error)
	RemoveMembers(ctx context.Context, teamID string, memberIDs []string, opts *core.Options) (*Team, error)
	UpdateInvitationStatus(ctx context.Context, teamID, memberID string, status MemberStatus, opts *core.Options) (*Team, error)
}

// SessionStore owns the transaction lifecycle the service wraps around
// repository calls.
type SessionStore interface {
	CreateSession(ctx context.Context) (mongo.Session, error)
	Commit(ctx context.Context, sess mongo.Session) error
	Abort(ctx context.Context, sess mongo.Session)
}

// Service wraps repository operations in a unit of work: one session
// per logical operation, committed on success, aborted and translated
// on failure.
type Service struct {
	store SessionStore
	repo  Repository
	opts  *core.Options
}

// NewService builds a service bound to one request's operation
// context.
func NewService(store SessionStore, opts *core.Options) *Service {
	return &Service{store: store, repo: NewMongoRepository(), opts: opts}
}

// NewServiceWithRepository swaps the repository implementation, for
// tests.
func NewServiceWithRepository(store SessionStore, repo Repository, opts *core.Options) *Service {
	return &Service{store: store, repo: repo, opts: opts}
}

// transactional runs fn inside a fresh session. On failure the session
// is aborted and the error passes through the unique-violation
// translator; on success the session is committed and the result
// returned unchanged.
func (s *Service) transactional(ctx context.Context, op string, fn func(opts *core.Options) (*Team, error)) (*Team, error) {
	sess, err := s.store.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	record, err := fn(s.opts.WithSession(sess))
	if err != nil {
		s.store.Abort(ctx, sess)
		logger.FromContext(ctx).Error("team operation failed", "operation", op, "error", err)
		return nil, mongostore.TranslateUniqueViolation(err, s.opts.Locale(), EntityName)
	}
	if err := s.store.Commit(ctx, sess); err != nil {
		logger.FromContext(ctx).Error("team operation failed", "operation", op, "error", err)
		return nil, mongostore.TranslateUniqueViolation(err, s.opts.Locale(), EntityName)
	}
	return record, nil
}

func (s *Service) Create(ctx context.Context, data *Input) (*Team, error) {
	return s.transactional(ctx, "create", func(opts *core.Options) (*Team, error) {
		return s.repo.Create(ctx, data, opts)
	})
}

func (s *Service) Update(ctx context.Context, id string, data *Input) (*Team, error) {
	return s.transactional(ctx, "update", func(opts *core.Options) (*Team, error) {
		return s.repo.Update(ctx, id, data, opts)
	})
}

// DestroyAll deletes the given teams inside one transaction: a failure
// partway aborts the whole batch.
func (s *Service) DestroyAll(ctx context.Context, ids []string) error {
	_, err := s.transactional(ctx, "destroyAll", func(opts *core.Options) (*Team, error) {
		for _, id := range ids {
			if err := s.repo.Destroy(ctx, id, opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// Import creates a team guarded by the importHash idempotency key. The
// existence pre-check runs outside the create transaction; the unique
// index on importHash is the ultimate guard against a concurrent
// duplicate.
func (s *Service) Import(ctx context.Context, data *Input, importHash string) (*Team, error) {
	if importHash == "" {
		return nil, core.NewValidationError(s.opts.Locale(), "importer.errors.importHashRequired")
	}
	count, err := s.repo.Count(ctx, bson.M{"importHash": importHash}, s.opts)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, core.NewValidationError(s.opts.Locale(), "importer.errors.importHashExistent")
	}
	data.ImportHash = importHash
	return s.Create(ctx, data)
}

func (s *Service) AddMembers(ctx context.Context, teamID string, memberIDs []string) (*Team, error) {
	return s.transactional(ctx, "addMembers", func(opts *core.Options) (*Team, error) {
		return s.repo.AddMembers(ctx, teamID, memberIDs, opts)
	})
}

func (s *Service) RemoveMembers(ctx context.Context, teamID string, memberIDs []string) (*Team, error) {
	return s.transactional(ctx, "removeMembers", func(opts *core.Options) (*Team, error) {
		return s.repo.RemoveMembers(ctx, teamID, memberIDs, opts)
	})
}

// UpdateInvitationStatus sets a member's invitation status. The status
// must be one of the known states; transitions between them are
// unrestricted.
func (s *Service) UpdateInvitationStatus(ctx context.Context, teamID, memberID string, status MemberStatus) (*Team, error) {
	if !status.Valid() {
		return nil, core.NewValidationError(s.opts.Locale(), "entities.team.errors.invalidStatus")
	}
	return s.transactional(ctx, "updateInvitationStatus", func(opts *core.Options) (*Team, error) {
		return s.repo.UpdateInvitationStatus(ctx, teamID, memberID, status, opts)
	})
}

func (s *Service) FindByID(ctx context.Context, id string) (*Team, error) {
	return s.repo.FindByID(ctx, id, s.opts)
}

func (s *Service) FindAndCountAll(ctx context.Context, q *ListQuery) (*ListResult, error) {
	return s.repo.FindAndCountAll(ctx, q, s.opts)
}

func (s *Service) FindAllAutocomplete(ctx context.Context, search string, limit int64) ([]core.AutocompleteItem, error) {
	return s.repo.FindAllAutocomplete(ctx, search, limit, s.opts)
}

func (s *Service) FilterIDs(ctx context.Context, ids []string) ([]string, error) {
	return s.repo.FilterIDs(ctx, ids, s.opts)
}

func (s *Service) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.repo.Count(ctx, filter, s.opts)
}
