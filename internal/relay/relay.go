package relay

// NOTIFICATION RELAY

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TelegramAPIBase is the production endpoint for the second bot.
const TelegramAPIBase = "https://api.telegram.org"

// Order carries the details of a completed purchase. It is built only once a
// screenshot passes verification and lives just long enough to be relayed
// and confirmed to the user.
type Order struct {
	Username    string
	UserID      int64
	Amount      int
	UDID        string
	PaymentID   string
	CompletedAt time.Time
}

// Notifier informs a second system that an order has been completed.
// Failures are informational; callers must not roll back completion.
type Notifier interface {
	OrderCompleted(ctx context.Context, order Order) error
}

// TelegramRelay posts completed-order summaries to the second bot's admin
// chat. Fire-and-forget: one attempt, bounded timeout, no retry.
type TelegramRelay struct {
	endpoint   string
	chatID     string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Notifier = (*TelegramRelay)(nil)

func New(baseURL, token, chatID string, timeout time.Duration, logger *zap.Logger) *TelegramRelay {
	return &TelegramRelay{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", baseURL, token),
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (r *TelegramRelay) OrderCompleted(ctx context.Context, order Order) error {
	form := url.Values{}
	form.Set("chat_id", r.chatID)
	form.Set("text", FormatOrderSummary(order))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	r.logger.Info("Order relayed to second bot",
		zap.Int64("user_id", order.UserID),
		zap.String("payment_id", order.PaymentID))
	return nil
}

func FormatOrderSummary(order Order) string {
	return fmt.Sprintf(
		"🎉 NEW COMPLETED ORDER FROM BOT 1 🎉\n\n"+
			"👤 User: %s\n"+
			"🆔 User ID: %d\n"+
			"Esign Amount: $%d USD\n"+
			"📱 UDID: %s\n"+
			"🆔 Payment ID: %s\n"+
			"⏰ Order Time: %s\n"+
			"📊 Status: ✅ PAYMENT CONFIRMED",
		order.Username,
		order.UserID,
		order.Amount,
		order.UDID,
		order.PaymentID,
		order.CompletedAt.Format("2006-01-02 15:04:05"),
	)
}
