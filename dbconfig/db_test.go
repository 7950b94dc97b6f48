package dbconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBConfig(t *testing.T) {
	cfg, err := NewDBConfig("postgres://localhost:5432/endpoints?sslmode=disable")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestNewDBConfigRejectsEmptyConnString(t *testing.T) {
	cfg, err := NewDBConfig("")
	require.ErrorIs(t, err, ErrInvalidConnString)
	assert.Nil(t, cfg)
}
