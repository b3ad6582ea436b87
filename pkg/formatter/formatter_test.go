package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-12, "-12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `hello\_world`, EscapeMarkdownV2("hello_world"))
	assert.Equal(t, `\#tag \(new\)`, EscapeMarkdownV2("#tag (new)"))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "—", FormatDate(time.Time{}))

	d := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "09.03.2025", FormatDate(d))
}
