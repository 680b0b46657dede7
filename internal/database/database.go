// Package database provides source connection management for GoSchema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dbsmedya/goschema/internal/config"
)

// Manager handles the connection for the configured document source.
// Exactly one of Mongo or MySQL is non-nil after Connect, depending on the
// source type; file sources need no connection.
type Manager struct {
	Mongo  *mongo.Client
	MySQL  *sql.DB
	config *config.Config
}

// NewManager creates a new connection manager from configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// Connect establishes the connection required by the configured source type.
func (m *Manager) Connect(ctx context.Context) error {
	switch m.config.Source.Type {
	case "mongo":
		client, err := m.connectMongoWithRetry(ctx, &m.config.Source.Mongo)
		if err != nil {
			return fmt.Errorf("failed to connect to mongo source: %w", err)
		}
		m.Mongo = client
		return nil
	case "mysql":
		db, err := m.connectMySQLWithRetry(ctx, &m.config.Source.MySQL)
		if err != nil {
			return fmt.Errorf("failed to connect to mysql source: %w", err)
		}
		m.MySQL = db
		return nil
	case "file":
		return nil
	default:
		return fmt.Errorf("unknown source type %q", m.config.Source.Type)
	}
}

// connectMongoWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectMongoWithRetry(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		client, err = connectMongo(ctx, cfg)
		if err == nil {
			return client, nil
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// connectMongo creates and pings a MongoDB client.
func connectMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(BuildMongoURI(cfg)).
		SetConnectTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

// BuildMongoURI constructs a MongoDB connection URI from configuration.
// An explicit URI wins over the discrete host/port/user fields.
func BuildMongoURI(cfg *config.MongoConfig) string {
	if cfg.URI != "" {
		return cfg.URI
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 27017
	}

	if cfg.User != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.User, cfg.Password, host, port)
	}
	return fmt.Sprintf("mongodb://%s:%d", host, port)
}

// connectMySQLWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectMySQLWithRetry(ctx context.Context, cfg *config.MySQLConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = connectMySQL(cfg)
		if err == nil {
			// Verify connection
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// connectMySQL creates a database connection.
func connectMySQL(cfg *config.MySQLConfig) (*sql.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.MySQLConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes all open connections gracefully.
func (m *Manager) Close() error {
	var errs []error

	if m.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := m.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
		cancel()
	}

	if m.MySQL != nil {
		if err := m.MySQL.Close(); err != nil {
			errs = append(errs, fmt.Errorf("mysql close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing connections: %v", errs)
	}
	return nil
}

// Ping verifies the open connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Mongo != nil {
		if err := m.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("mongo ping failed: %w", err)
		}
	}

	if m.MySQL != nil {
		if err := m.MySQL.PingContext(ctx); err != nil {
			return fmt.Errorf("mysql ping failed: %w", err)
		}
	}

	return nil
}
