// Package core holds the types shared across every domain: the
// per-operation context threaded through services and repositories,
// the error taxonomy, and list-query primitives.
package core

import (
	"github.com/teamdesk/teamdesk/engine/auth"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultLanguage is used when an operation carries no locale.
const DefaultLanguage = "en"

// Options is the operation context built once per request and passed
// explicitly through the whole call chain. It is immutable except for
// the session, which WithSession attaches on a copy when a unit of
// work opens a transaction.
type Options struct {
	Language    string
	CurrentUser *auth.Principal
	Database    *mongo.Database
	// Session is nil outside a transaction. It is owned by exactly one
	// logical operation and must never be shared across concurrent
	// operations.
	Session mongo.Session
}

// NewOptions builds an operation context for one request.
func NewOptions(language string, user *auth.Principal, db *mongo.Database) *Options {
	return &Options{Language: language, CurrentUser: user, Database: db}
}

// WithSession returns a copy of the options carrying the session. The
// receiver is left untouched so concurrent readers of the original
// options never observe another operation's transaction.
func (o *Options) WithSession(sess mongo.Session) *Options {
	if o == nil {
		return &Options{Session: sess}
	}
	out := *o
	out.Session = sess
	return &out
}

// CurrentUserID returns the principal's id, or the empty string for
// anonymous calls. Audit stamps take the value verbatim; an anonymous
// principal is never an error.
func (o *Options) CurrentUserID() string {
	if o == nil || o.CurrentUser == nil {
		return ""
	}
	return o.CurrentUser.ID
}

// Locale returns the operation's language, defaulting to English.
func (o *Options) Locale() string {
	if o == nil || o.Language == "" {
		return DefaultLanguage
	}
	return o.Language
}
