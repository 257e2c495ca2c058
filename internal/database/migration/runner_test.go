package migration

import (
	"testing"
	"testing/fstest"

	"jobtrack/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX i ON t (c);")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (c INT);\n")},
		"README.md":         {Data: []byte("ignored")},
		"V3_bad_name.sql":   {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE t (c INT);", migs[0].SQL)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_RejectsEmptyAndDuplicate(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	require.Error(t, err)

	_, err = Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestPending(t *testing.T) {
	migs, err := Load(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V2__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.NoError(t, err)

	pending, skipped, err := Pending(migs, map[int64]string{1: migs[0].Checksum})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].Version)

	_, _, err = Pending(migs, map[int64]string{1: "edited"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migs, err := Load(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS applications")
}
