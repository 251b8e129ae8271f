package ocr

// VERIFICATION ORACLE

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// ErrUnreadable marks images the oracle could not decode or recognize.
// Callers treat it as a recoverable rejection, never as a fatal fault.
var ErrUnreadable = errors.New("image unreadable")

// Oracle extracts text from a payment screenshot.
type Oracle interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// TesseractOracle runs the screenshot through a preprocessing pass and a
// tesseract recognition pass tuned for a uniform block of text.
type TesseractOracle struct {
	lang   string
	logger *zap.Logger
}

var _ Oracle = (*TesseractOracle)(nil)

func NewTesseractOracle(lang string, logger *zap.Logger) *TesseractOracle {
	return &TesseractOracle{
		lang:   lang,
		logger: logger,
	}
}

func (o *TesseractOracle) ExtractText(ctx context.Context, image []byte) (string, error) {
	prepared, err := Preprocess(image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("recognition cancelled: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(o.lang); err != nil {
		return "", fmt.Errorf("set language %q: %w", o.lang, err)
	}
	// Payment confirmations are a block of text, not a single line.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: recognition failed: %v", ErrUnreadable, err)
	}

	text = strings.TrimSpace(text)
	o.logger.Debug("Extracted text from screenshot",
		zap.Int("image_bytes", len(image)),
		zap.Int("text_len", len(text)))
	return text, nil
}
