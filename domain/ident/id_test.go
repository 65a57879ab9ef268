package ident

import (
	"encoding/json"
	"testing"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_ZeroValueIsUnassigned(t *testing.T) {
	var id ID
	_, ok := id.Value()
	assert.False(t, ok)
	assert.False(t, id.IsAssigned())
	assert.Nil(t, id.Ptr())
	assert.Equal(t, int64(0), id.Int64())
}

func TestID_JSON(t *testing.T) {
	type envelope struct {
		ID ID `json:"id"`
	}

	data, err := json.Marshal(envelope{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null}`, string(data))

	data, err = json.Marshal(envelope{ID: New(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(data))

	var got envelope
	require.NoError(t, json.Unmarshal([]byte(`{"id":12}`), &got))
	assert.Equal(t, New(12), got.ID)

	got = envelope{ID: New(3)}
	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &got))
	assert.False(t, got.ID.IsAssigned())

	assert.Error(t, json.Unmarshal([]byte(`{"id":"x"}`), &got))
}

func TestParse(t *testing.T) {
	id, err := Parse("15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id.Int64())

	for _, raw := range []string{"", "abc", "0", "-4"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, failure.ErrInvalidParameter, raw)
	}
}

func TestFromPtr(t *testing.T) {
	assert.False(t, FromPtr(nil).IsAssigned())
	v := int64(9)
	assert.Equal(t, New(9), FromPtr(&v))
}
