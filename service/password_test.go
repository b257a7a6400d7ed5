package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"Ab1!", false},
		{"abcdefgh", false},
		{"abcdefg1", false},
		{"abcdefG1", true},
		{"abcdef!1", true},
		{"ABCDEF!a", true},
		{"Secret#123", true},
		{strings.Repeat("aA1", 22), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPassword(tt.password), tt.password)
	}
}
