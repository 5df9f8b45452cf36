// Package mongostore wraps the MongoDB client with the session
// lifecycle, unique-violation translation, and query helpers the
// repositories build on.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is the document store handle shared by every operation. The
// handle itself is read-only after construction; only sessions carry
// per-operation state.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// New wraps an existing client. transactions=false turns the whole
// session lifecycle into no-ops.
func New(client *mongo.Client, name string, transactions bool) *Store {
	s := &Store{client: client, transactions: transactions}
	if client != nil {
		s.db = client.Database(name)
	}
	return s
}

// Connect dials the database and verifies the connection.
func Connect(ctx context.Context, uri, name string, transactions bool) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return New(client, name, transactions), nil
}

// Database returns the shared database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping verifies the connection, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
