package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

// TelegramNotifier avisa o chat dos coordenadores sobre cadastros novos e
// mudanças de status. Sem token configurado vira no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, chatID: chatID, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotificarCadastroCriado(ctx context.Context, c *domain.Cadastro, e *domain.Evento) {
	nomeEvento := "—"
	if e != nil {
		nomeEvento = e.Nome
	}
	text := fmt.Sprintf(
		"*Novo cadastro recebido*\n\n"+"Participante: %s\n"+"Evento: %s\n"+"Tipo de deficiência: %s",
		c.NomeCompleto, nomeEvento, c.TipoDeficiencia,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) NotificarStatusAlterado(ctx context.Context, c *domain.Cadastro) {
	text := fmt.Sprintf(
		"*Status atualizado*\n\n"+"Participante: %s\n"+"Novo status: %s",
		c.NomeCompleto, c.Status,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if n.chatID == 0 {
		n.logger.Debug("notification skipped (no chat_id)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
