package storage

import (
	"testing"

	"ecohub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBaseURL(t *testing.T) {
	cfg := &config.StorageConfig{Endpoint: "localhost:9000", Bucket: "pics"}
	assert.Equal(t, "http://localhost:9000/pics", PublicBaseURL(cfg))

	cfg.UseSSL = true
	assert.Equal(t, "https://localhost:9000/pics", PublicBaseURL(cfg))

	cfg.PublicURL = "https://cdn.example.com/pics/"
	assert.Equal(t, "https://cdn.example.com/pics", PublicBaseURL(cfg))
}

func TestNewMinioDisabled(t *testing.T) {
	s, err := NewMinio(t.Context(), &config.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)
}
