package whatsapp

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	client "github.com/mamadbah2/abattoir/pkg/clients/whatsapp"
)

// ErrMessagingDisabled is returned when no WhatsApp client is configured.
var ErrMessagingDisabled = errors.New("whatsapp messaging is not configured")

// MessagingService describes the notification operations used by the HTTP
// layer and the scheduler.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. A nil client yields a
// service whose sends fail with ErrMessagingDisabled.
func NewMetaWhatsAppService(client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendOutbound pushes a text message to one recipient.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if s.client == nil {
		return ErrMessagingDisabled
	}
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Message) == "" {
		return models.InvalidPayload("recipient and message are required")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("to", req.To)}
	if resp != nil && len(resp.Messages) > 0 {
		fields = append(fields, zap.String("message_id", resp.Messages[0].ID))
	}
	s.logger.Info("outbound message sent", fields...)
	return nil
}
