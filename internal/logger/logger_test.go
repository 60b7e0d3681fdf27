package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGet_InitializesLazily(t *testing.T) {
	l := Get()
	assert.NotNil(t, l)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel), "default console logger only shows warnings")
	assert.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestInit_Verbose(t *testing.T) {
	Init("development", true)
	t.Cleanup(func() { Init("development", false) })

	assert.True(t, Get().Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_Production(t *testing.T) {
	Init("production", false)
	t.Cleanup(func() { Init("development", false) })

	core := Get().Desugar().Core()
	assert.True(t, core.Enabled(zapcore.InfoLevel))
	assert.False(t, core.Enabled(zapcore.DebugLevel))
}

func TestSync_NoPanic(t *testing.T) {
	assert.NotPanics(t, Sync)
}
