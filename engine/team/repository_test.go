package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamdesk/teamdesk/engine/core"
)

func TestMongoRepositoryFilterIDs(t *testing.T) {
	t.Run("Should return an empty slice for empty input without querying the store", func(t *testing.T) {
		repo := NewMongoRepository()
		opts := core.NewOptions("en", nil, nil)

		out, err := repo.FilterIDs(context.Background(), nil, opts)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Empty(t, out)

		out, err = repo.FilterIDs(context.Background(), []string{}, opts)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Empty(t, out)
	})
}
