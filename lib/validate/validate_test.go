package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Kind  string `form:"kind" validate:"oneof=a b"`
	Other string `json:"other,omitempty" validate:"required_if=Kind b"`
}

func TestFields(t *testing.T) {
	fields, err := Fields(&sample{Kind: "b"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Tag: "required"},
		{Field: "other", Tag: "required_if"},
	}, fields)

	fields, err = Fields(sample{Name: "x", Kind: "a"})
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&sample{Name: "x", Kind: "a"}))
	assert.EqualError(t, Struct(&sample{Name: "x", Kind: "c"}), "kind oneof")
	assert.Error(t, Struct(nil))
	assert.Error(t, Struct(42))
}
