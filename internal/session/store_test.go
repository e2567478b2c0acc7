package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "exmplr-agent/pkg/errors"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotEmpty(t, sess.ID)
	assert.Empty(t, sess.Messages)
	assert.NotNil(t, sess.Params)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	other := store.Create()
	assert.NotEqual(t, sess.ID, other.ID)
	// sessions never share parameter state
	other.Params["search_query"] = "isolated"
	assert.Nil(t, sess.Params["search_query"])
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestSessionWindow(t *testing.T) {
	sess := &Session{}
	for _, content := range []string{"a", "b", "c", "d"} {
		sess.Append(RoleUser, content)
	}

	assert.Len(t, sess.Window(0), 4)
	assert.Len(t, sess.Window(10), 4)

	last2 := sess.Window(2)
	require.Len(t, last2, 2)
	assert.Equal(t, "c", last2[0].Content)
	assert.Equal(t, "d", last2[1].Content)
}
