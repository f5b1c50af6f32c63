package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"newTitle","author":null}`), &req))

	title, ok := req.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "newTitle", title)

	_, ok = req.Author.Get()
	assert.False(t, ok, "null must read as absent")

	_, ok = req.Year.Get()
	assert.False(t, ok, "missing key must read as absent")
}

func TestOptionalUnmarshalZeroValuesArePresent(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","year":0}`), &req))

	assert.Equal(t, Some(""), req.Title)
	assert.Equal(t, Some(0), req.Year)
}

func TestOptionalUnmarshalTypeMismatch(t *testing.T) {
	var req UpdateBookRequest
	assert.Error(t, json.Unmarshal([]byte(`{"year":"twenty"}`), &req))
}

func TestOptionalMarshal(t *testing.T) {
	b, err := json.Marshal(UpdateBookRequest{Title: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","author":null,"year":null}`, string(b))
}
