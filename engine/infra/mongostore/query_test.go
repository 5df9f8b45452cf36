package mongostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSafeObjectID(t *testing.T) {
	t.Run("Should round-trip a valid hex id", func(t *testing.T) {
		id := primitive.NewObjectID()
		assert.Equal(t, id, SafeObjectID(id.Hex()))
	})

	t.Run("Should substitute a never-matching id for invalid input", func(t *testing.T) {
		id := SafeObjectID("not-a-hex-id")
		assert.False(t, id.IsZero())
	})
}

func TestSort(t *testing.T) {
	t.Run("Should parse ascending and descending specs", func(t *testing.T) {
		assert.Equal(t, bson.D{{Key: "name", Value: 1}}, Sort("name_ASC"))
		assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, Sort("createdAt_DESC"))
	})

	t.Run("Should map id to _id", func(t *testing.T) {
		assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, Sort("id_ASC"))
	})

	t.Run("Should return nil for an empty spec", func(t *testing.T) {
		assert.Nil(t, Sort(""))
	})
}

func TestEscapeRegex(t *testing.T) {
	t.Run("Should neutralize regex metacharacters", func(t *testing.T) {
		escaped := EscapeRegex("a.b*c(d)")
		assert.Equal(t, `a\.b\*c\(d\)`, escaped)
	})
}

func TestSessionLifecycleDisabled(t *testing.T) {
	t.Run("Should return a nil session when transactions are disabled", func(t *testing.T) {
		store := New(nil, "teamdesk", false)
		sess, err := store.CreateSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("Should treat commit and abort of a nil session as no-ops", func(t *testing.T) {
		store := New(nil, "teamdesk", false)
		assert.NoError(t, store.Commit(context.Background(), nil))
		store.Abort(context.Background(), nil)
	})

	t.Run("Should run the operation directly when no session is present", func(t *testing.T) {
		called := false
		err := WithSession(context.Background(), nil, func(ctx context.Context) error {
			called = true
			assert.Equal(t, context.Background(), ctx)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})
}
