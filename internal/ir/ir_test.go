package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "unique-string", KindUniqueString.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "uint", KindUint.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "unknown", ValueKind(99).String())
}
