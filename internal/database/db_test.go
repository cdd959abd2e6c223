package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNRoundTrip(t *testing.T) {
	cfg, err := mysql.ParseDSN(DSN("app", "s3cr@t", "db.local", "3307", "sakila"))
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "s3cr@t", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.local:3307", cfg.Addr)
	assert.Equal(t, "sakila", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, time.UTC, cfg.Loc)
	assert.True(t, cfg.ClientFoundRows)
}

func TestDSNWithoutPassword(t *testing.T) {
	dsn := DSN("root", "", "localhost", "3306", "sakila")
	assert.Contains(t, dsn, "root@tcp(localhost:3306)/sakila")
}
