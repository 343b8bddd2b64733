package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseZapLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseZapLevel(" WARN "))
	assert.Equal(t, zapcore.WarnLevel, parseZapLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseZapLevel("ERROR"))

	// 配置写错回退 INFO，不让进程起不来
	assert.Equal(t, zapcore.InfoLevel, parseZapLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, parseZapLevel(""))
}
