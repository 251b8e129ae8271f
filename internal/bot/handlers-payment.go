package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"esign-bot/internal/relay"
	"esign-bot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handlePlanSelection records the chosen payment tier and sends the payment
// instructions for it. Requires a session that already holds a UDID.
func (b *Bot) handlePlanSelection(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	sess, err := b.sessions.Get(ctx, userID)
	if err != nil || sess.UDID == "" {
		b.editMessage(chatID, callback.Message.MessageID,
			"❌ Error: Your session has expired. Please send your UDID again using /start.")
		return
	}

	amount, err := parsePlanAmount(callback.Data)
	if err != nil {
		b.logger.Error("Invalid plan selection",
			zap.Int64("user_id", userID),
			zap.String("data", callback.Data),
			zap.Error(err))
		b.editMessage(chatID, callback.Message.MessageID,
			"❌ An error occurred. Please try again or use /start.")
		return
	}

	sess.Amount = amount
	sess.PaymentID = BuildPaymentID(amount, sess.UDID)
	if err := b.sessions.Set(ctx, userID, sess); err != nil {
		b.logger.Error("Failed to save session",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.editMessage(chatID, callback.Message.MessageID,
			"❌ An error occurred. Please try again or use /start.")
		return
	}

	caption := fmt.Sprintf(
		"💳 *Payment for $%d USD*\n\n"+
			"📱 *UDID:* `%s`\n"+
			"🆔 *Payment ID:* `%s`\n\n"+
			"1️⃣ Make the payment using the QR code in the image\\.\n"+
			"2️⃣ Take a screenshot of the payment confirmation\\.\n"+
			"3️⃣ Send the screenshot back to this chat\\.",
		amount, escapeMarkdown(sess.UDID), escapeMarkdown(sess.PaymentID))

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(paymentPhotoFor(amount)))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	b.sendOrFallback(photo, chatID, fmt.Sprintf(
		"Payment instructions for $%d. Your payment ID is %s. Send a screenshot of the confirmation back to this chat.",
		amount, sess.PaymentID))

	b.editMessage(chatID, callback.Message.MessageID,
		fmt.Sprintf("Instructions sent for $%d payment. Please check the new message.", amount))
}

func parsePlanAmount(data string) (int, error) {
	raw, found := strings.CutPrefix(data, paymentCallbackPrefix)
	if !found {
		return 0, fmt.Errorf("unexpected callback data: %q", data)
	}
	amount, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if _, ok := paymentPhotoURLs[amount]; !ok {
		return 0, fmt.Errorf("unknown payment amount: %d", amount)
	}
	return amount, nil
}

// handleScreenshot runs the submitted photo through the verification oracle
// and either completes the order or asks the user to resubmit.
func (b *Bot) handleScreenshot(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	sess, err := b.sessions.Get(ctx, userID)
	if err != nil || !sess.PaymentPending() {
		b.sendError(chatID,
			"I wasn't expecting a photo from you. Please start the payment process first using /start.")
		return
	}

	processingID := b.sendProcessingIndicator(chatID)
	// The indicator is removed on every exit path, whatever the outcome.
	defer b.deleteMessage(chatID, processingID)

	photo := largestPhoto(msg.Photo)
	data, err := b.downloadPhoto(photo.FileID)
	if err != nil {
		b.logger.Error("Failed to download screenshot",
			zap.Int64("user_id", userID),
			zap.String("file_id", photo.FileID),
			zap.Error(err))
		b.sendRejection(chatID)
		return
	}

	text, err := b.oracle.ExtractText(ctx, data)
	if err != nil {
		// Unreadable images take the same user-visible path as a failed
		// match; the session stays so the user can resubmit.
		b.logger.Error("Screenshot text extraction failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendRejection(chatID)
		return
	}

	if !strings.Contains(strings.ToLower(text), strings.ToLower(b.cfg.ExpectedPayee)) {
		b.logger.Warn("Payment rejected, expected name not found",
			zap.Int64("user_id", userID),
			zap.String("expected", b.cfg.ExpectedPayee))
		b.sendRejection(chatID)
		return
	}

	b.completeOrder(ctx, msg, sess)
}

func (b *Bot) completeOrder(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	chatID := msg.Chat.ID
	user := msg.From

	b.logger.Info("Payment validated",
		zap.Int64("user_id", user.ID),
		zap.String("payment_id", sess.PaymentID))

	username := user.FirstName
	if user.UserName != "" {
		username = "@" + user.UserName
	}

	order := relay.Order{
		Username:    username,
		UserID:      user.ID,
		Amount:      sess.Amount,
		UDID:        sess.UDID,
		PaymentID:   sess.PaymentID,
		CompletedAt: time.Now(),
	}

	// Best effort: a relay failure never blocks the user's confirmation.
	if err := b.relay.OrderCompleted(ctx, order); err != nil {
		b.logger.Error("Failed to relay completed order",
			zap.Int64("user_id", user.ID),
			zap.String("payment_id", sess.PaymentID),
			zap.Error(err))
	}

	caption := fmt.Sprintf(
		"🎉 *Thank You, %s* 🎉\n\n"+
			"Order has been completed\\.\n\n"+
			"UDID: `%s`\n"+
			"Price: `$%.2f`\n"+
			"Added on: `%s`\n\n"+
			"To start a new order, use /start",
		escapeMarkdown(user.FirstName),
		escapeMarkdown(sess.UDID),
		float64(sess.Amount),
		regionName)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(thankYouPhotoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	photo.ReplyMarkup = createCheckTimeKeyboard(checkTimeURLFor(sess.Amount))
	b.sendOrFallback(photo, chatID, fmt.Sprintf(
		"Thank you! Your order for $%d is complete. Use /start for a new one.", sess.Amount))

	if err := b.sessions.Clear(ctx, user.ID); err != nil {
		b.logger.Error("Failed to clear session after completion",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	}
}

// sendProcessingIndicator posts the transient validation animation and
// returns its message ID so the caller can remove it.
func (b *Bot) sendProcessingIndicator(chatID int64) int {
	anim := tgbotapi.NewAnimation(chatID, tgbotapi.FileURL(processingGIFURL))
	anim.Caption = "🔄 *Validating your payment\\.\\.\\. please wait\\.*"
	anim.ParseMode = tgbotapi.ModeMarkdownV2

	sent := b.sendOrFallback(anim, chatID, "🔄 Validating your payment... please wait.")
	return sent.MessageID
}

func (b *Bot) sendRejection(chatID int64) {
	text := fmt.Sprintf(
		"Sorry, I could not find the name \"%s\" in the payment screenshot. "+
			"Please make sure you have sent the correct and complete payment confirmation and try again.",
		b.cfg.ExpectedPayee)

	anim := tgbotapi.NewAnimation(chatID, tgbotapi.FileURL(rejectedGIFURL))
	anim.Caption = "⚠️ *Payment Not Confirmed*\n\n" + escapeMarkdown(text)
	anim.ParseMode = tgbotapi.ModeMarkdownV2

	b.sendOrFallback(anim, chatID, "⚠️ Payment not confirmed: "+text)
}
