package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already normalized", input: "user@example.com", expected: "user@example.com"},
		{name: "uppercase", input: "User@Example.COM", expected: "user@example.com"},
		{name: "surrounding whitespace", input: "  user@example.com\t", expected: "user@example.com"},
		{name: "mixed", input: " MiXeD@ExAmPlE.com ", expected: "mixed@example.com"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

func TestUserChanges_IsEmpty(t *testing.T) {
	assert.True(t, UserChanges{}.IsEmpty())

	name := "Test"
	assert.False(t, UserChanges{FirstName: &name}.IsEmpty())
	assert.False(t, UserChanges{LastName: &name}.IsEmpty())

	digest := "digest"
	assert.False(t, UserChanges{PasswordHash: &digest}.IsEmpty())
}
