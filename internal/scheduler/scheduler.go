package scheduler

import (
	"context"
	"time"

	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

type eventoDesativador interface {
	DesativarExpirados(ctx context.Context) ([]*domain.Evento, error)
}

type confirmacaoPurgadora interface {
	PurgarExpiradas() int
}

// Scheduler roda a manutenção periódica: desliga eventos cuja data final
// passou e descarta tokens de confirmação vencidos.
type Scheduler struct {
	eventoService eventoDesativador
	confirmacoes  confirmacaoPurgadora
	interval      time.Duration
	logger        logger.Logger
}

func New(
	eventoService eventoDesativador,
	confirmacoes confirmacaoPurgadora,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		eventoService: eventoService,
		confirmacoes:  confirmacoes,
		interval:      interval,
		logger:        logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	desativados, err := s.eventoService.DesativarExpirados(ctx)
	if err != nil {
		s.logger.Error("failed to deactivate expired eventos",
			logger.String("error", err.Error()),
		)
	} else {
		for _, e := range desativados {
			s.logger.Info("evento expired",
				logger.String("evento_id", e.ID),
				logger.String("nome", e.Nome),
			)
		}
	}

	if purgadas := s.confirmacoes.PurgarExpiradas(); purgadas > 0 {
		s.logger.Info("expired confirmation tokens purged",
			logger.Int("count", purgadas),
		)
	}
}
