package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidProjectName(t *testing.T) {
	assert.True(t, ValidProjectName("abc"))
	assert.True(t, ValidProjectName("  My Clinic  "))
	assert.True(t, ValidProjectName("Кот"))

	assert.False(t, ValidProjectName(""))
	assert.False(t, ValidProjectName("ab"))
	assert.False(t, ValidProjectName("  ab  "))
	assert.False(t, ValidProjectName("   "))
}

func TestParseInstagramURL(t *testing.T) {
	tests := []struct {
		in       string
		username string
		ok       bool
	}{
		{"https://www.instagram.com/foo", "foo", true},
		{"https://www.instagram.com/foo/", "foo", true},
		{"https://instagram.com/foo?igsh=abc123", "foo", true},
		{"instagram.com/some_user", "some_user", true},
		{"  https://www.instagram.com/foo/  ", "foo", true},

		{"https://example.com/foo", "", false},
		{"just some text", "", false},
		{"instagram.com/", "", false},
		{"https://www.instagram.com/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			username, ok := ParseInstagramURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.username, username)
		})
	}
}

func TestNormalizeHashtag(t *testing.T) {
	tests := []struct {
		in  string
		tag string
		ok  bool
	}{
		{"#fitness", "fitness", true},
		{"fitness", "fitness", true},
		{" #fitness ", "fitness", true},
		{"#go", "go", true},

		{"#a", "", false},
		{"#", "", false},
		{"", "", false},
		{"#two words", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tag, ok := NormalizeHashtag(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.tag, tag)
		})
	}
}
