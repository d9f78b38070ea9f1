package lark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

const msgTypeText = "text"

// ErrNoticeRejected is returned when Lark answers a notice with a failure code
var ErrNoticeRejected = errors.New("lark rejected notice")

// RejectedError carries the code and message Lark returned for a notice
type RejectedError struct {
	Code int
	Msg  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("lark rejected notice: code=%d, msg=%s", e.Code, e.Msg)
}

// Is matches ErrNoticeRejected
func (e *RejectedError) Is(target error) bool {
	return target == ErrNoticeRejected
}

// Notice is a plain text IM message to one project manager
type Notice struct {
	ReceiveIDType string
	ReceiveID     string
	Text          string
}

// MessageAPI sends notices through the Lark IM message API
type MessageAPI struct {
	client *SDKClient
	logger *zap.Logger
}

// NewMessageAPI creates a new message API handler
func NewMessageAPI(client *SDKClient, logger *zap.Logger) *MessageAPI {
	return &MessageAPI{
		client: client,
		logger: logger,
	}
}

// Send delivers notice and returns the Lark message id
func (m *MessageAPI) Send(ctx context.Context, notice Notice) (string, error) {
	req, err := newCreateRequest(notice)
	if err != nil {
		return "", err
	}

	resp, err := m.client.GetClient().Im.Message.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to send notice to %s: %w", notice.ReceiveID, err)
	}
	if !resp.Success() {
		return "", &RejectedError{Code: resp.Code, Msg: resp.Msg}
	}

	var messageID string
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}
	m.logger.Debug("Notice delivered",
		zap.String("message_id", messageID),
		zap.String("receive_id", notice.ReceiveID))
	return messageID, nil
}

// newCreateRequest renders notice as a text message create request
func newCreateRequest(notice Notice) (*larkIm.CreateMessageReq, error) {
	if notice.ReceiveID == "" {
		return nil, fmt.Errorf("notice has no receiver")
	}
	content, err := json.Marshal(map[string]string{"text": notice.Text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notice: %w", err)
	}

	return larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType(notice.ReceiveIDType).
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(notice.ReceiveID).
			MsgType(msgTypeText).
			Content(string(content)).
			Build()).
		Build(), nil
}
