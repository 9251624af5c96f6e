package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReference(t *testing.T) {
	ref := NewReference()
	assert.True(t, strings.HasPrefix(ref, "TX-"))
	assert.Len(t, strings.Split(ref, "-"), 3)

	// Uniqueness is ultimately enforced by the database index; here we only
	// sanity-check that consecutive references differ.
	assert.NotEqual(t, ref, NewReference())
}
