package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender entrega uma mensagem de texto para um telefone E.164.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// messageCreator é o pedaço do cliente Twilio que usamos.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioSender struct {
	api  messageCreator
	from string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: from}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid != nil {
		slog.Debug("sms sent", "sid", *resp.Sid)
	}
	return nil
}

// LogSender só registra a mensagem (Twilio não configurado).
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, body string) error {
	slog.InfoContext(ctx, "sms (not sent)", "to", to, "body", body)
	return nil
}

// E164 converte o celular normalizado (11 dígitos) para +55.
func E164(phone string) string {
	return "+55" + phone
}
