package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avandyk/marketbrief/internal/models"
)

func englishBlock(insights []string, fallback bool) models.LanguageBlock {
	return models.LanguageBlock{
		Language:   models.Language{Code: "en", Name: "English", Direction: models.LeftToRight},
		Insights:   insights,
		Provenance: models.Provenance{Backend: "openai", Fallback: fallback},
	}
}

func TestFormatMessage(t *testing.T) {
	block := englishBlock([]string{"S&P 500 rose 1.2%.", "Fed held rates."}, false)

	text := FormatMessage("2026-08-23", block, maxMessageLen)

	require.Contains(t, text, "Daily Financial Summary - 2026-08-23")
	require.Contains(t, text, "• S&P 500 rose 1.2%.")
	require.Contains(t, text, "• Fed held rates.")
	require.NotContains(t, text, "placeholder content")
}

func TestFormatMessageMarksFallback(t *testing.T) {
	block := englishBlock([]string{"Markets were mixed."}, true)

	text := FormatMessage("2026-08-23", block, maxMessageLen)

	require.Contains(t, text, "(placeholder content: live generation was unavailable)")
}

func TestFormatMessageTruncatesToCaptionLimit(t *testing.T) {
	long := strings.Repeat("markets moved on heavy volume today ", 60)
	block := englishBlock([]string{long, long}, false)

	text := FormatMessage("2026-08-23", block, maxCaptionLen)

	require.LessOrEqual(t, len(text), maxCaptionLen)
	require.True(t, strings.HasPrefix(text, "\U0001F4C8 Daily Financial Summary"))
}

func TestFormatMessageTruncationIsRuneSafe(t *testing.T) {
	// Multibyte content must never be cut mid-rune.
	long := strings.Repeat("الأسواق ارتفعت اليوم ", 80)
	block := englishBlock([]string{long}, false)

	text := FormatMessage(time.Now().Format("2006-01-02"), block, maxCaptionLen)

	require.LessOrEqual(t, len(text), maxCaptionLen)
	require.True(t, strings.ToValidUTF8(text, "") == text)
}

func TestNormalizeChannelID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"marketnews", "@marketnews"},
		{"@marketnews", "@marketnews"},
		{"-1001234567890", "-1001234567890"},
		{"1234567890", "1234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, normalizeChannelID(tt.in), "input %q", tt.in)
	}
}

func TestNumericChatID(t *testing.T) {
	id, ok := numericChatID("-1001234567890")
	require.True(t, ok)
	require.Equal(t, int64(-1001234567890), id)

	_, ok = numericChatID("@marketnews")
	require.False(t, ok)
}
