package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goschema/internal/config"
)

func TestBuildMongoURI(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.MongoConfig
		expected string
	}{
		{
			name:     "explicit uri wins",
			cfg:      config.MongoConfig{URI: "mongodb://custom:27017/app", Host: "ignored", User: "ignored"},
			expected: "mongodb://custom:27017/app",
		},
		{
			name:     "host and port",
			cfg:      config.MongoConfig{Host: "db.example.com", Port: 27018},
			expected: "mongodb://db.example.com:27018",
		},
		{
			name:     "credentials",
			cfg:      config.MongoConfig{Host: "db", Port: 27017, User: "sampler", Password: "pw"},
			expected: "mongodb://sampler:pw@db:27017",
		},
		{
			name:     "defaults",
			cfg:      config.MongoConfig{},
			expected: "mongodb://localhost:27017",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildMongoURI(&tt.cfg))
		})
	}
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.MySQLConfig
		expected string
	}{
		{
			name: "basic",
			cfg: config.MySQLConfig{
				Host: "localhost", Port: 3306,
				User: "root", Password: "secret",
				Database: "app",
			},
			expected: "root:secret@tcp(localhost:3306)/app?parseTime=true&tls=preferred",
		},
		{
			name: "tls disabled",
			cfg: config.MySQLConfig{
				Host: "db", Port: 3307,
				User: "u", Password: "p",
				Database: "d", TLS: "disable",
			},
			expected: "u:p@tcp(db:3307)/d?parseTime=true&tls=false",
		},
		{
			name: "tls required",
			cfg: config.MySQLConfig{
				Host: "db", Port: 3306,
				User: "u", Password: "p",
				Database: "d", TLS: "required",
			},
			expected: "u:p@tcp(db:3306)/d?parseTime=true&tls=true",
		},
		{
			name: "no database",
			cfg: config.MySQLConfig{
				Host: "db", Port: 3306,
				User: "u", Password: "p",
			},
			expected: "u:p@tcp(db:3306)/?parseTime=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(&tt.cfg))
		})
	}
}

func TestManager_ConnectFileSourceNeedsNoConnection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Type = "file"

	m := NewManager(cfg)
	require.NoError(t, m.Connect(context.Background()))
	assert.Nil(t, m.Mongo)
	assert.Nil(t, m.MySQL)
	assert.NoError(t, m.Close())
}

func TestManager_ConnectUnknownSourceType(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Type = "postgres"

	m := NewManager(cfg)
	err := m.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type")
}

func TestManager_CloseWithoutConnections(t *testing.T) {
	m := NewManager(config.DefaultConfig())
	assert.NoError(t, m.Close())
}

func TestManager_PingWithoutConnections(t *testing.T) {
	m := NewManager(config.DefaultConfig())
	assert.NoError(t, m.Ping(context.Background()))
}
