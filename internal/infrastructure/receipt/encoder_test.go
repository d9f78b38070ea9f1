package receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
)

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfData  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestEncoder_Accept(t *testing.T) {
	enc := NewEncoder(Config{}, zap.NewNop())

	tests := []struct {
		name     string
		file     string
		declared string
		data     []byte
		wantType string
		wantName string
	}{
		{"png", "taxi.png", "image/png", pngData, "image/png", "taxi.png"},
		{"pdf declared as octet-stream", "hotel.pdf", "application/octet-stream", pdfData, "application/pdf", "hotel.pdf"},
		{"jpeg with path", `C:\Users\jane\dinner.jpg`, "image/jpeg", jpegData, "image/jpeg", "dinner.jpg"},
		{"unnamed", "", "", pdfData, "application/pdf", "receipt.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := enc.Accept(tt.file, tt.declared, tt.data)

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, r.ContentType)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, int64(len(tt.data)), r.Size)
		})
	}
}

func TestEncoder_AcceptPolicy(t *testing.T) {
	t.Run("too large", func(t *testing.T) {
		enc := NewEncoder(Config{MaxSize: 8}, zap.NewNop())
		_, err := enc.Accept("big.pdf", "application/pdf", pdfData)
		assert.ErrorIs(t, err, port.ErrReceiptTooLarge)
	})

	t.Run("text is not a receipt", func(t *testing.T) {
		enc := NewEncoder(Config{}, zap.NewNop())
		_, err := enc.Accept("notes.txt", "image/png", []byte("just some text"))
		assert.ErrorIs(t, err, port.ErrReceiptType)
	})

	t.Run("empty", func(t *testing.T) {
		enc := NewEncoder(Config{}, zap.NewNop())
		_, err := enc.Accept("x.png", "image/png", nil)
		assert.ErrorIs(t, err, port.ErrReceiptType)
	})

	t.Run("restricted types", func(t *testing.T) {
		enc := NewEncoder(Config{AllowedTypes: []string{"application/pdf"}}, zap.NewNop())
		_, err := enc.Accept("taxi.png", "image/png", pngData)
		assert.ErrorIs(t, err, port.ErrReceiptType)
	})
}

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder(Config{}, zap.NewNop())

	got, err := enc.Encode(context.Background(), entity.Receipt{Name: "hotel.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")})

	require.NoError(t, err)
	assert.Equal(t, port.EncodedReceipt{Name: "hotel.pdf", Type: "application/pdf", Data: "JVBERi0xLjQ="}, got)

	_, err = enc.Encode(context.Background(), entity.Receipt{Name: "empty.pdf"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = enc.Encode(ctx, entity.Receipt{Name: "a.pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, context.Canceled)
}
