package typeutil

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPtr(t *testing.T) {
	value := "ssh-ed25519 AAAA"
	ptr := Ptr(value)

	value = "changed"
	assert.Equal(t, "ssh-ed25519 AAAA", *ptr)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "key", Deref(Ptr("key")))
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, 0, Deref[int](nil))
}
