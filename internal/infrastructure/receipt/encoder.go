// Package receipt applies the upload policy to receipt files and encodes them
// for submission.
package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
)

// DefaultMaxSize is the largest accepted receipt, 10 MiB
const DefaultMaxSize int64 = 10 << 20

// DefaultAllowedTypes are the accepted receipt MIME types
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/heic",
	"application/pdf",
}

// Config holds the receipt policy
type Config struct {
	MaxSize      int64
	AllowedTypes []string
}

// Encoder implements port.ReceiptEncoder
type Encoder struct {
	maxSize int64
	allowed map[string]bool
	logger  *zap.Logger
}

// NewEncoder creates a receipt encoder. Zero values fall back to the defaults.
func NewEncoder(cfg Config, logger *zap.Logger) *Encoder {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if len(cfg.AllowedTypes) == 0 {
		cfg.AllowedTypes = DefaultAllowedTypes
	}
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &Encoder{
		maxSize: cfg.MaxSize,
		allowed: allowed,
		logger:  logger,
	}
}

// Accept sniffs the content type of an upload and checks it against the
// policy. The sniffed type wins over the declared one.
// Implements port.ReceiptEncoder interface
func (e *Encoder) Accept(name, declaredType string, data []byte) (entity.Receipt, error) {
	size := int64(len(data))
	if size == 0 {
		return entity.Receipt{}, fmt.Errorf("%w: empty file", port.ErrReceiptType)
	}
	if size > e.maxSize {
		return entity.Receipt{}, fmt.Errorf("%w: %d bytes, limit %d", port.ErrReceiptTooLarge, size, e.maxSize)
	}

	detected := mimetype.Detect(data)
	contentType := detected.String()
	if !e.isAllowed(detected) {
		e.logger.Info("Receipt type rejected",
			zap.String("name", name),
			zap.String("declared", declaredType),
			zap.String("detected", contentType))
		return entity.Receipt{}, fmt.Errorf("%w: %s", port.ErrReceiptType, contentType)
	}

	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	return entity.Receipt{
		Name:        sanitizeName(name, detected.Extension()),
		ContentType: contentType,
		Size:        size,
		Data:        data,
	}, nil
}

// Encode produces the base64 form of a receipt
// Implements port.ReceiptEncoder interface
func (e *Encoder) Encode(ctx context.Context, receipt entity.Receipt) (port.EncodedReceipt, error) {
	if err := ctx.Err(); err != nil {
		return port.EncodedReceipt{}, err
	}
	if len(receipt.Data) == 0 {
		return port.EncodedReceipt{}, fmt.Errorf("receipt %q has no content", receipt.Name)
	}
	return port.EncodedReceipt{
		Name: receipt.Name,
		Type: receipt.ContentType,
		Data: base64.StdEncoding.EncodeToString(receipt.Data),
	}, nil
}

func (e *Encoder) isAllowed(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if e.allowed[strings.ToLower(m.String())] {
			return true
		}
		for _, alias := range m.Aliases() {
			if e.allowed[strings.ToLower(alias)] {
				return true
			}
		}
	}
	return false
}

// sanitizeName keeps the base name of an upload, naming unnamed files by
// their detected extension
func sanitizeName(name, ext string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "receipt" + ext
	}
	return name
}
