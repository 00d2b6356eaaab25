package migration

import (
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/migrations"
)

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.up.sql":   {Data: []byte("CREATE INDEX a ON t (b);")},
		"002_add_index.down.sql": {Data: []byte("DROP INDEX a;")},
		"001_init.up.sql":        {Data: []byte("CREATE TABLE t (b INT);")},
		"001_init.down.sql":      {Data: []byte("DROP TABLE t;")},
		"README.md":              {Data: []byte("ignored")},
		"bad.up.sql":             {Data: []byte("ignored")},
	}

	got, err := NewMigrator(nil, slog.Default(), fsys).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "init", got[0].Name)
	assert.Equal(t, "DROP TABLE t;", got[0].DownSQL)
	assert.Equal(t, 2, got[1].Version)
	assert.Equal(t, "add_index", got[1].Name)
}

func TestLoadMigrations_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.up.sql": {Data: []byte("CREATE TABLE t (b INT);")},
	}

	_, err := NewMigrator(nil, slog.Default(), fsys).LoadMigrations()
	assert.ErrorContains(t, err, "001_init.down.sql")
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.up.sql":   {Data: []byte("SELECT 1;")},
		"001_a.down.sql": {Data: []byte("SELECT 1;")},
		"001_b.up.sql":   {Data: []byte("SELECT 1;")},
		"001_b.down.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := NewMigrator(nil, slog.Default(), fsys).LoadMigrations()
	assert.ErrorContains(t, err, "duplicate migration version 1")
}

func TestEmbeddedSchema(t *testing.T) {
	got, err := NewMigrator(nil, slog.Default(), migrations.FS).LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, got)

	schema := got[0].UpSQL
	for _, table := range []string{"users", "profiles", "subscriptions", "posts", "read_receipts", "notification_outbox"} {
		assert.Contains(t, schema, "CREATE TABLE "+table+" (")
	}
	assert.Contains(t, schema, "UNIQUE (post_id, user_id)")
	assert.Contains(t, schema, "PRIMARY KEY (subscriber_id, author_id)")
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	applied := map[int]time.Time{1: time.Now(), 3: time.Now()}

	got := pending(all, applied)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Version)
}

func TestChecksum(t *testing.T) {
	assert.Len(t, checksum("SELECT 1;"), 64)
	assert.Equal(t, checksum("a"), checksum("a"))
	assert.NotEqual(t, checksum("a"), checksum("b"))
}
