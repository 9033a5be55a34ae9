package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewKey_Layout(t *testing.T) {
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	key := NewKey("avatars", "Me.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^avatars/2026/03/07/[0-9a-f-]{36}\.png$`), key)
	assert.True(t, validKey(key))
}

func TestNewKey_Unique(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, NewKey("resources", "a.pdf", now), NewKey("resources", "a.pdf", now))
}

func TestNewKey_SanitizesInput(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	key := NewKey("../../etc", "../../passwd", now)
	assert.True(t, validKey(key), key)
	assert.NotContains(t, key, "..")

	assert.Regexp(t, `^misc/2026/01/02/[0-9a-f-]{36}$`, NewKey("", "noext", now))
	assert.Regexp(t, `[0-9a-f]$`, NewKey("x", "evil.p$p", now))
}

func TestValidKey(t *testing.T) {
	for _, k := range []string{"", "/abs", "a/../b", "a//b", `a\b`, "."} {
		assert.False(t, validKey(k), k)
	}
	assert.True(t, validKey("avatars/2026/01/02/abc.png"))
}
