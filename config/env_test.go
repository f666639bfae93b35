package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")

	assert.Equal(t, "hello", getEnvAsString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", getEnvAsString("TEST_STRING_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_MISSING", 7))
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DUR_GO", "150ms")
	t.Setenv("TEST_DUR_SECONDS", "30")
	t.Setenv("TEST_DUR_BAD", "soon")

	assert.Equal(t, 150*time.Millisecond, getEnvAsTimeDuration("TEST_DUR_GO", time.Second))
	assert.Equal(t, 30*time.Second, getEnvAsTimeDuration("TEST_DUR_SECONDS", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DUR_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DUR_MISSING", time.Second))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yes-ish")

	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_BAD", false))
	assert.True(t, getEnvAsBool("TEST_BOOL_MISSING", true))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b ,c,,")

	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_MISSING", []string{"x"}))
}
