package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStoreGetDelete(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, Store("replicate", "r8-abc"))

	key, err := Get("replicate")
	require.NoError(t, err)
	assert.Equal(t, "r8-abc", key)

	require.NoError(t, Delete("replicate"))

	_, err = Get("replicate")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, Delete("replicate"), ErrNotFound)
}

func TestValidation(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, Store("", "key"))
	assert.Error(t, Store("replicate", ""))
	_, err := Get("")
	assert.Error(t, err)
	assert.Error(t, Delete(""))
}

func TestResolve(t *testing.T) {
	keyring.MockInit()

	assert.Equal(t, "", Resolve("replicate", ""))
	assert.Equal(t, "from-env", Resolve("replicate", "from-env"))

	require.NoError(t, Store("replicate", "from-keyring"))
	assert.Equal(t, "from-keyring", Resolve("replicate", ""))
	assert.Equal(t, "from-env", Resolve("replicate", "from-env"))
}
