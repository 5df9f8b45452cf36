package template

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamdesk/teamdesk/engine/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeStore struct {
	sessions  int
	commits   int
	aborts    int
	commitErr error
}

func (f *fakeStore) CreateSession(_ context.Context) (mongo.Session, error) {
	f.sessions++
	return nil, nil
}

func (f *fakeStore) Commit(_ context.Context, _ mongo.Session) error {
	f.commits++
	return f.commitErr
}

func (f *fakeStore) Abort(_ context.Context, _ mongo.Session) {
	f.aborts++
}

type fakeRepo struct {
	createFn  func(data *Input) (*Template, error)
	countFn   func(filter bson.M) (int64, error)
	findAllFn func(q *ListQuery) (*ListResult, error)
	grantFn   func(id string) error

	createCalls int
	grantCalls  []string
}

func (f *fakeRepo) Create(_ context.Context, data *Input, _ *core.Options) (*Template, error) {
	f.createCalls++
	return f.createFn(data)
}

func (f *fakeRepo) Update(_ context.Context, _ string, _ *Input, _ *core.Options) (*Template, error) {
	return nil, nil
}

func (f *fakeRepo) Destroy(_ context.Context, _ string, _ *core.Options) error {
	return nil
}

func (f *fakeRepo) GrantAccess(_ context.Context, templateID string, _ *core.Options) error {
	f.grantCalls = append(f.grantCalls, templateID)
	if f.grantFn != nil {
		return f.grantFn(templateID)
	}
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, _ string, _ *core.Options) (*Template, error) {
	return nil, nil
}

func (f *fakeRepo) FindAndCountAll(_ context.Context, q *ListQuery, _ *core.Options) (*ListResult, error) {
	if f.findAllFn != nil {
		return f.findAllFn(q)
	}
	return nil, nil
}

func (f *fakeRepo) FindAllAutocomplete(_ context.Context, _ string, _ int64, _ *core.Options) ([]core.AutocompleteItem, error) {
	return nil, nil
}

func (f *fakeRepo) FilterIDs(_ context.Context, _ []string, _ *core.Options) ([]string, error) {
	return nil, nil
}

func (f *fakeRepo) Count(_ context.Context, filter bson.M, _ *core.Options) (int64, error) {
	return f.countFn(filter)
}

func dupKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code: 11000,
			Message: "E11000 duplicate key error collection: teamdesk.templates index: " +
				index + " dup key: { name: \"welcome-email\" }",
		}},
	}
}

func newTestService(repo Repository) (*Service, *fakeStore) {
	store := &fakeStore{}
	opts := core.NewOptions("en", nil, nil)
	return NewServiceWithRepository(store, repo, opts), store
}

func TestServiceCreate(t *testing.T) {
	t.Run("Should commit the session when the repository succeeds", func(t *testing.T) {
		want := &Template{Name: "welcome-email"}
		repo := &fakeRepo{createFn: func(*Input) (*Template, error) { return want, nil }}
		svc, store := newTestService(repo)

		got, err := svc.Create(context.Background(), &Input{Name: "welcome-email"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, store.commits)
		assert.Zero(t, store.aborts)
	})

	t.Run("Should abort and translate a duplicate name", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(*Input) (*Template, error) { return nil, dupKeyError("name_1") }}
		svc, store := newTestService(repo)

		_, err := svc.Create(context.Background(), &Input{Name: "welcome-email"})
		require.Error(t, err)
		assert.Equal(t, 1, store.aborts)
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, "The template name must be unique", err.Error())
	})

	t.Run("Should pass through errors that are not duplicate key violations", func(t *testing.T) {
		boom := errors.New("socket closed")
		repo := &fakeRepo{createFn: func(*Input) (*Template, error) { return nil, boom }}
		svc, store := newTestService(repo)

		_, err := svc.Create(context.Background(), &Input{Name: "x"})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, store.aborts)
	})

	t.Run("Should translate a duplicate key surfaced at commit", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(*Input) (*Template, error) { return &Template{}, nil }}
		svc, store := newTestService(repo)
		store.commitErr = dupKeyError("name_1")

		_, err := svc.Create(context.Background(), &Input{Name: "welcome-email"})
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, "The template name must be unique", err.Error())
		assert.Equal(t, 1, store.commits)
	})
}

func TestServiceAccessAll(t *testing.T) {
	t.Run("Should grant every id inside a single session", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, store := newTestService(repo)

		require.NoError(t, svc.AccessAll(context.Background(), []string{"a", "b"}))
		assert.Equal(t, []string{"a", "b"}, repo.grantCalls)
		assert.Equal(t, 1, store.sessions)
		assert.Equal(t, 1, store.commits)
	})

	t.Run("Should abort the whole batch when one grant fails", func(t *testing.T) {
		boom := errors.New("write failed")
		repo := &fakeRepo{grantFn: func(id string) error {
			if id == "b" {
				return boom
			}
			return nil
		}}
		svc, store := newTestService(repo)

		err := svc.AccessAll(context.Background(), []string{"a", "b", "c"})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"a", "b"}, repo.grantCalls)
		assert.Equal(t, 1, store.aborts)
		assert.Zero(t, store.commits)
	})
}

func TestServiceImport(t *testing.T) {
	t.Run("Should reject an empty import hash before touching the repository", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, store := newTestService(repo)

		_, err := svc.Import(context.Background(), &Input{Name: "x"}, "")
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Zero(t, store.sessions)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("Should attach the hash and create when it is unused", func(t *testing.T) {
		repo := &fakeRepo{
			countFn: func(filter bson.M) (int64, error) {
				assert.Equal(t, bson.M{"importHash": "h1"}, filter)
				return 0, nil
			},
			createFn: func(data *Input) (*Template, error) {
				assert.Equal(t, "h1", data.ImportHash)
				return &Template{Name: data.Name, ImportHash: data.ImportHash}, nil
			},
		}
		svc, store := newTestService(repo)

		got, err := svc.Import(context.Background(), &Input{Name: "x"}, "h1")
		require.NoError(t, err)
		assert.Equal(t, "h1", got.ImportHash)
		assert.Equal(t, 1, store.commits)
	})
}
