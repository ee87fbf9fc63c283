package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotConnected is returned when a Store is used before Connect succeeded.
var ErrNotConnected = errors.New("database: not connected, call Connect first")

// Store owns the MongoDB client and database handle. It is constructed once
// in main and passed by dependency injection; there is no package-level
// lazily initialized handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes and pings a MongoDB connection.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Collection returns a handle to the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Database returns the underlying database handle.
func (s *Store) Database() *mongo.Database {
	if s == nil {
		return nil
	}
	return s.db
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return ErrNotConnected
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// TxRunner runs a unit of work that should be all-or-nothing across multiple
// documents. Implementations that cannot provide atomicity run the function
// directly.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithTransaction runs fn inside a MongoDB transaction. Standalone servers
// reject transactions; in that case the steps are executed sequentially so
// the workflow still completes, matching the pre-transaction behavior.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s == nil || s.client == nil {
		return ErrNotConnected
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
