package ambient

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo("anim", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Infof("mode %s", "hardware")
	l.Warnf("slow")
	l.Errorf("lost %s", "device")

	assert.Contains(t, out.String(), "[anim] DEBUG: shown 2")
	assert.Contains(t, out.String(), "[anim] INFO: mode hardware")
	assert.Contains(t, errOut.String(), "[anim] WARN: slow")
	assert.Contains(t, errOut.String(), "[anim] ERROR: lost device")
}

func TestLoggerWithoutPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), "INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := orNop(nil)
	assert.False(t, l.DebugEnabled())
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("nothing")
}
