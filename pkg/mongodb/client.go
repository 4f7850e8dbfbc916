package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotConfigured is returned when no connection URI was provided.
var ErrNotConfigured = errors.New("MONGODB_URI not set")

// Client is a process-wide MongoDB handle that connects on first use and
// reuses the connection afterwards. A failed connect is not cached, so the
// next caller tries again.
type Client struct {
	uri            string
	dbName         string
	connectTimeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewClient creates a lazily connecting client for the given database.
func NewClient(uri, dbName string, connectTimeout time.Duration) *Client {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	return &Client{
		uri:            uri,
		dbName:         dbName,
		connectTimeout: connectTimeout,
	}
}

// Configured reports whether a connection URI is available.
func (c *Client) Configured() bool {
	return c.uri != ""
}

// Database returns the database handle, connecting if necessary.
func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	// Nested documents decode as maps so listed documents serialize cleanly to JSON.
	clientOptions := options.Client().
		ApplyURI(c.uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	c.client = client
	c.db = client.Database(c.dbName)
	return c.db, nil
}

// Collection returns a handle to the named collection, connecting if necessary.
func (c *Client) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Disconnect closes the connection if one was opened.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}
