package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"esign-bot/internal/config"
	"esign-bot/internal/ocr"
	"esign-bot/internal/relay"
	"esign-bot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramClient is the slice of the bot API the handlers use. Satisfied by
// *tgbotapi.BotAPI and replaced by a recording fake in tests.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	bot      *tgbotapi.BotAPI
	api      telegramClient
	logger   *zap.Logger
	sessions session.Store
	oracle   ocr.Oracle
	relay    relay.Notifier
	cfg      *config.Config

	fetchFile func(url string) ([]byte, error)

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(
	token string,
	sessions session.Store,
	oracle ocr.Oracle,
	notifier relay.Notifier,
	logger *zap.Logger,
	cfg *config.Config,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return &Bot{
		bot:       botAPI,
		api:       botAPI,
		logger:    logger,
		sessions:  sessions,
		oracle:    oracle,
		relay:     notifier,
		cfg:       cfg,
		fetchFile: fetchFile,
		locks:     make(map[int64]*sync.Mutex),
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.bot.StopReceivingUpdates()
			return nil

		case update := <-updates:
			go b.dispatch(ctx, update)
		}
	}
}

// dispatch serializes updates per chat while letting distinct chats proceed
// concurrently.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	var chatID int64
	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		return
	}

	lock := b.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) chatLock(chatID int64) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	lock, ok := b.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[chatID] = lock
	}
	return lock
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	b.logger.Debug("Processing message",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("text", msg.Text))

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handleScreenshot(ctx, msg)
	case msg.Text != "":
		// Any plain text is treated as a UDID submission attempt,
		// whatever the current session looks like.
		b.handleUDIDInput(ctx, msg)
	default:
		b.handleUnexpectedContent(ctx, msg)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", callback.Message.Chat.ID),
		zap.String("data", callback.Data))

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callback.ID),
			zap.Error(err))
	}

	b.handlePlanSelection(ctx, callback)
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}

// sendOrFallback sends a rich message and falls back to plain text when the
// transport rejects it (bad markup, unreachable asset URL). Returns whatever
// message the transport accepted.
func (b *Bot) sendOrFallback(c tgbotapi.Chattable, chatID int64, fallback string) tgbotapi.Message {
	sent, err := b.api.Send(c)
	if err == nil {
		return sent
	}
	b.logger.Error("Failed to send rich message, falling back to text",
		zap.Int64("chat_id", chatID),
		zap.Error(err))

	sent, err = b.api.Send(tgbotapi.NewMessage(chatID, fallback))
	if err != nil {
		b.logger.Error("Fallback message also failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	return sent
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}

// deleteMessage is best-effort: deletion failures are logged and swallowed.
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("Could not delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}

func (b *Bot) downloadPhoto(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}
	return b.fetchFile(url)
}

var fileHTTPClient = &http.Client{Timeout: 30 * time.Second}

func fetchFile(url string) ([]byte, error) {
	resp, err := fileHTTPClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
