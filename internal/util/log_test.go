package util_test

import (
	"testing"

	"github.com/chapool/treasury-api/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, util.LogLevelFromString("INFO"))
	assert.Equal(t, zerolog.WarnLevel, util.LogLevelFromString("warn"))
	assert.Equal(t, zerolog.DebugLevel, util.LogLevelFromString("chatty"))
}

func TestLogFromContextFallsBackToGlobal(t *testing.T) {
	l := util.LogFromContext(t.Context())
	assert.NotNil(t, l)
	assert.NotEqual(t, zerolog.Disabled, l.GetLevel())
}
