package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"esign-bot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.handleHelp(ctx, msg.Chat.ID)
	default:
		b.handleUnknownCommand(ctx, msg.Chat.ID)
	}
}

// handleStart resets the flow. It is idempotent: any previous progress is
// dropped before the onboarding instructions go out.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if err := b.sessions.Clear(ctx, msg.From.ID); err != nil {
		b.logger.Error("Failed to clear session",
			zap.Int64("user_id", msg.From.ID),
			zap.Error(err))
	}

	caption := fmt.Sprintf(
		"🎉 *Welcome, %s\\!* 🎉\n\n"+
			"1️⃣ First, download the UDID profile using the button below\\.\n"+
			"2️⃣ Install it on your device\\.\n"+
			"3️⃣ Copy your unique UDID and send it to me to begin\\.",
		escapeMarkdown(msg.From.FirstName))

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(startPhotoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	photo.ReplyMarkup = createProfileKeyboard()

	b.sendOrFallback(photo, chatID, "Welcome! Please send your UDID to begin.")
}

func (b *Bot) handleHelp(_ context.Context, chatID int64) {
	helpText := `Available commands:
	/start - Start a new order
	/help - Show this help

	If you run into problems, contact support.`

	b.sendText(chatID, helpText)
}

func (b *Bot) handleUnknownCommand(_ context.Context, chatID int64) {
	b.sendError(chatID, "Unknown command. Please use /start to begin.")
}

// handleUDIDInput validates free text as a device identifier. A valid
// identifier always starts the flow over, even mid-payment.
func (b *Bot) handleUDIDInput(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	udid := strings.TrimSpace(msg.Text)

	if !IsValidUDID(udid) {
		reply := tgbotapi.NewMessage(chatID,
			"❌ *Invalid UDID Format*\n\n"+
				"Please make sure you copied the entire UDID string\\. "+
				"It should be a long string of letters and numbers with no spaces\\.\n\n"+
				"Use /start to get the download link again if you need help\\.")
		reply.ParseMode = tgbotapi.ModeMarkdownV2
		b.sendOrFallback(reply, chatID,
			"Invalid UDID format. Please send the full UDID with no spaces, or use /start for help.")
		return
	}

	if err := b.sessions.Set(ctx, userID, session.Session{UDID: udid}); err != nil {
		b.logger.Error("Failed to save session",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendError(chatID, "Could not save your UDID. Please try again.")
		return
	}

	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ *UDID Received\\!*\n\n"+
			"📱 *Your UDID:* `%s`\n\n"+
			"👇 *Please select your payment plan:*",
		escapeMarkdown(udid)))
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	reply.ReplyMarkup = createPlanKeyboard()

	b.sendOrFallback(reply, chatID, "UDID received! Please select your payment plan.")
}

// handleUnexpectedContent deals with non-photo, non-text attachments.
func (b *Bot) handleUnexpectedContent(ctx context.Context, msg *tgbotapi.Message) {
	sess, err := b.sessions.Get(ctx, msg.From.ID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			b.logger.Error("Failed to get session",
				zap.Int64("user_id", msg.From.ID),
				zap.Error(err))
		}
		return
	}
	if sess.PaymentPending() {
		b.sendText(msg.Chat.ID, "📸 Please send a photo of your payment confirmation.")
	}
}
