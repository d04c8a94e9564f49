package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
)

// Update orquestra o caso de uso de alteração de palpite. O passcode é o
// único token de autorização; nome, e-mail, sponsor e flag de pagamento
// são imutáveis por este caminho
type Update struct {
	log   *zap.Logger
	store Store
	pipe  *validate.Pipeline
	open  bool

	// OnResult recebe o status final de cada requisição (métricas)
	OnResult func(status string)
}

// NewUpdate constrói o serviço de alteração
func NewUpdate(log *zap.Logger, store Store, pipe *validate.Pipeline, open bool) *Update {
	return &Update{log: log, store: store, pipe: pipe, open: open}
}

// Update valida spread e data, localiza o palpite pelo passcode e persiste a
// alteração. A visão do membro volta sempre que o palpite existe, mesmo
// quando a alteração foi recusada, para o cliente reconciliar
func (s *Update) Update(ctx context.Context, req dto.UpdateRequest) dto.Envelope {
	var errs, issues []string

	if !s.open {
		issues = append(issues, msgChangesClosed)
	}

	collect(&errs, &issues, s.pipe.ValidateConfidence(req.Bet.Spread))
	collect(&errs, &issues, s.pipe.ValidateDate(req.Bet.Date.Year, req.Bet.Date.Month, req.Bet.Date.Day))

	entry, err := s.store.FindByPasscode(ctx, req.Passcode)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		issues = append(issues, fmt.Sprintf("no bet found for passcode %q", req.Passcode))
	case err != nil:
		errs = append(errs, msgLookupUnavailable)
	}

	if entry != nil && len(errs) == 0 && len(issues) == 0 {
		target := dateOf(req.Bet.Date)
		if uerr := s.store.UpdateBet(ctx, req.Passcode, req.Bet.Spread, target); uerr != nil {
			s.log.Error("update bet", zap.String("passcode", req.Passcode), zap.Error(uerr))
			errs = append(errs, msgStoreFailed)
		} else {
			entry.Spread = req.Bet.Spread
			entry.TargetDate = target
		}
	}

	var member *dto.MemberView
	if entry != nil {
		member = memberView(entry)
	}
	env := buildEnvelope(errs, issues, nil, member)
	if s.OnResult != nil {
		s.OnResult(env.Status)
	}
	return env
}
