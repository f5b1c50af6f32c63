package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstError(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "title", "first")
	v.Check(false, "title", "second")
	v.Check(true, "author", "never recorded")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "first"}, v.Errors)
}

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("title"))
	assert.True(t, NotBlank(" a "))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank(" \t\n"))
}

func TestPositive(t *testing.T) {
	assert.True(t, Positive(1))
	assert.True(t, Positive(2023))
	assert.False(t, Positive(0))
	assert.False(t, Positive(-5))
}
