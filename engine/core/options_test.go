package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teamdesk/teamdesk/engine/auth"
)

func TestOptions(t *testing.T) {
	t.Run("Should leave the receiver untouched when attaching a session", func(t *testing.T) {
		opts := NewOptions("en", &auth.Principal{ID: "u1"}, nil)
		withSess := opts.WithSession(nil)
		assert.NotSame(t, opts, withSess)
		assert.Nil(t, opts.Session)
		assert.Equal(t, "u1", withSess.CurrentUserID())
	})

	t.Run("Should return an empty user id for anonymous calls", func(t *testing.T) {
		opts := NewOptions("en", nil, nil)
		assert.Equal(t, "", opts.CurrentUserID())
	})

	t.Run("Should default the locale to English", func(t *testing.T) {
		assert.Equal(t, "en", (&Options{}).Locale())
		assert.Equal(t, "es", (&Options{Language: "es"}).Locale())
	})

	t.Run("Should be nil-safe", func(t *testing.T) {
		var opts *Options
		assert.Equal(t, "", opts.CurrentUserID())
		assert.Equal(t, "en", opts.Locale())
		assert.NotNil(t, opts.WithSession(nil))
	})
}
