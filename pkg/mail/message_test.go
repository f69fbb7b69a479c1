package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitRecipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "a@b.com", []string{"a@b.com"}},
		{"two in order", "a@b.com;b@c.com", []string{"a@b.com", "b@c.com"}},
		{"whitespace trimmed", " a@b.com ; b@c.com ", []string{"a@b.com", "b@c.com"}},
		{"empty segments dropped", "a@b.com;;b@c.com;", []string{"a@b.com", "b@c.com"}},
		{"only delimiters", " ; ; ", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, SplitRecipients(tt.input))
		})
	}
}

func TestFormatFrom(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Alice <alice@example.com>", FormatFrom("Alice", "alice@example.com"))
	require.Equal(t, "alice@example.com", FormatFrom("", "alice@example.com"))
	require.Equal(t, "Alice <alice@example.com>", FormatFrom(" Alice ", " alice@example.com "))
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.False(t, StatusDraft.Terminal())
	require.False(t, StatusSending.Terminal())
	require.True(t, StatusSent.Terminal())
	require.True(t, StatusFailed.Terminal())
}

func TestMessage_From(t *testing.T) {
	t.Parallel()

	msg := &Message{FromName: "Alice", FromAddress: "alice@example.com"}
	require.Equal(t, "Alice <alice@example.com>", msg.From())
}
