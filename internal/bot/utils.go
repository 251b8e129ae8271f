package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// escapeMarkdown escapes user-supplied content (names, identifiers) embedded
// in MarkdownV2 captions so it cannot break the markup.
func escapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

// largestPhoto picks the highest-resolution attachment the transport offers.
func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best
}
