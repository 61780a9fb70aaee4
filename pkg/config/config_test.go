package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jzx17/goretry/pkg/retry"
	"github.com/jzx17/goretry/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input       string
		expected    time.Duration
		expectError bool
	}{
		{input: "6s", expected: 6 * time.Second},
		{input: "1s", expected: time.Second},
		{input: "250ms", expected: 250 * time.Millisecond},
		{input: "1m30s", expected: 90 * time.Second},
		{input: "1500", expected: 1500 * time.Millisecond},
		{input: " 2s ", expected: 2 * time.Second},
		{input: "", expectError: true},
		{input: "soon", expectError: true},
		{input: "5 parsecs", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, types.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), *cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := Parse([]byte("timeout: 30s\nmax_delay: 500\n"))
		require.NoError(t, err)
		assert.Equal(t, "30s", cfg.Timeout)
		assert.Equal(t, "500", cfg.MaxDelay)
		assert.Equal(t, "1s", cfg.BackoffFloor)
	})

	t.Run("empty value keeps default", func(t *testing.T) {
		cfg, err := Parse([]byte("timeout: \"\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "6s", cfg.Timeout)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := Parse([]byte("max_delay: whenever\n"))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
		assert.Contains(t, err.Error(), "max_delay")
	})

	t.Run("non-positive duration", func(t *testing.T) {
		_, err := Parse([]byte("timeout: 0s\n"))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("timeout: [6s\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retrier.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: ${RETRIER_TEST_TIMEOUT}\nbackoff_floor: 100ms\n"), 0o600))
	t.Setenv("RETRIER_TEST_TIMEOUT", "10s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10s", cfg.Timeout)
	assert.Equal(t, "1s", cfg.MaxDelay)
	assert.Equal(t, "100ms", cfg.BackoffFloor)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{Timeout: "3s", MaxDelay: "200ms", BackoffFloor: "10"}

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	r, err := retry.NewRetrier(retry.DefaultRetryCondition, opts...)
	require.NoError(t, err)
	assert.NoError(t, r.Close())

	_, err = Config{Timeout: "3s", MaxDelay: "-1s", BackoffFloor: "1s"}.Options()
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
