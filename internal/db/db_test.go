package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(DriverMySQL, "user:pw@tcp(localhost:3306)/app")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(DriverPostgres, "host=localhost user=app dbname=app")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector("sqlite", "file.db")
	assert.Error(t, err)
}
