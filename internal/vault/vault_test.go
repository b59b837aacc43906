package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	path, key, err := ParseRef("vault:kv/campus/db#password")
	require.NoError(t, err)
	assert.Equal(t, "kv/campus/db", path)
	assert.Equal(t, "password", key)

	for _, bad := range []string{"kv/campus#x", "vault:kv/campus", "vault:#x", "vault:kv#"} {
		_, _, err := ParseRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitMount(t *testing.T) {
	m, rel := splitMount("kv/campus/db")
	assert.Equal(t, "kv", m)
	assert.Equal(t, "campus/db", rel)

	m, rel = splitMount("kv")
	assert.Equal(t, "kv", m)
	assert.Equal(t, "", rel)
}
