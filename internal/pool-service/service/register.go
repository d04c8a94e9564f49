package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/invite"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/token"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
	"github.com/radieske/prediction-pool-service/pkg/contracts/events"
)

// Store define as operações de persistência usadas pelos serviços
type Store interface {
	Insert(ctx context.Context, e *repo.BetEntry) error
	UpdateBet(ctx context.Context, passcode string, spread int, target time.Time) error
	FindByPasscode(ctx context.Context, passcode string) (*repo.BetEntry, error)
	FindByName(ctx context.Context, name string) (*repo.BetEntry, error)
	FindByEmail(ctx context.Context, email string) (*repo.BetEntry, error)
	SponsorUsed(ctx context.Context, sponsorID int64) (bool, error)
}

// Notifier publica o evento de inscrição; a entrega é fire-and-forget
type Notifier interface {
	MemberRegistered(ctx context.Context, e events.MemberRegistered) error
}

// Registration orquestra o caso de uso de criação de palpite:
// pipeline de validação + ledger de convites + gerador de passcode + store
type Registration struct {
	log     *zap.Logger
	store   Store
	pipe    *validate.Pipeline
	invites *invite.Ledger
	notify  Notifier // pode ser nil
	open    bool

	// NewPasscode é injetável nos testes; default token.NewPasscode
	NewPasscode func() string
	// OnResult recebe o status final de cada requisição (métricas)
	OnResult func(status string)
}

// NewRegistration constrói o serviço de inscrição
func NewRegistration(log *zap.Logger, store Store, pipe *validate.Pipeline, invites *invite.Ledger, notify Notifier, open bool) *Registration {
	return &Registration{
		log:         log,
		store:       store,
		pipe:        pipe,
		invites:     invites,
		notify:      notify,
		open:        open,
		NewPasscode: token.NewPasscode,
	}
}

// Register executa o fluxo completo de inscrição. Todas as checagens rodam
// até o fim para que a resposta traga todos os problemas de uma vez; nada é
// persistido se houver qualquer erro, issue ou problema de convite
func (s *Registration) Register(ctx context.Context, req dto.RegisterRequest) dto.Envelope {
	var errs, issues, inviteIssues []string

	// Chave de abertura: com a inscrição fechada, o sucesso vira "nok"
	// mas a validação completa ainda roda
	if !s.open {
		issues = append(issues, msgRegistrationClosed)
	}

	collect(&errs, &issues, s.pipe.ValidateName(ctx, req.Name)...)
	collect(&errs, &issues, s.pipe.ValidateEmail(ctx, req.Email)...)
	collect(&errs, &issues, s.pipe.ValidateConfidence(req.Bet.Spread))
	collect(&errs, &issues, s.pipe.ValidateDate(req.Bet.Date.Year, req.Bet.Date.Month, req.Bet.Date.Day))

	sponsorID, err := s.invites.Resolve(ctx, req.Invite)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		inviteIssues = append(inviteIssues, msgInviteNotFound)
	case err != nil:
		errs = append(errs, msgInviteUnavailable)
	default:
		used, uerr := s.invites.SponsorUsed(ctx, sponsorID)
		if uerr != nil {
			errs = append(errs, msgInviteUnavailable)
		} else if used {
			inviteIssues = append(inviteIssues, msgInviteUsed)
		}
	}

	if len(errs)+len(issues)+len(inviteIssues) > 0 {
		return s.done(buildEnvelope(errs, issues, inviteIssues, nil))
	}

	entry := &repo.BetEntry{
		Passcode:   s.NewPasscode(),
		SponsorID:  &sponsorID,
		Name:       req.Name,
		Email:      req.Email,
		Spread:     req.Bet.Spread,
		TargetDate: dateOf(req.Bet.Date),
	}

	err = s.store.Insert(ctx, entry)
	if errors.Is(err, repo.ErrDuplicatePasscode) {
		// Colisão no espaço finito de tokens: uma nova tentativa com token fresco
		entry.Passcode = s.NewPasscode()
		err = s.store.Insert(ctx, entry)
	}
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrDuplicateName):
		// Corrida perdida entre a checagem consultiva e o insert
		issues = append(issues, fmt.Sprintf("name %q is already taken", req.Name))
	case errors.Is(err, repo.ErrDuplicateEmail):
		issues = append(issues, fmt.Sprintf("email %q is already registered", req.Email))
	case errors.Is(err, repo.ErrSponsorTaken):
		inviteIssues = append(inviteIssues, msgInviteUsed)
	default:
		s.log.Error("insert bet", zap.Error(err))
		errs = append(errs, msgStoreFailed)
	}
	if len(errs)+len(issues)+len(inviteIssues) > 0 {
		return s.done(buildEnvelope(errs, issues, inviteIssues, nil))
	}

	// Notificação fora da fronteira transacional: falha não desfaz o insert
	if s.notify != nil {
		ev := events.MemberRegistered{
			EventID:    uuid.NewString(),
			Passcode:   entry.Passcode,
			Name:       entry.Name,
			Email:      entry.Email,
			Spread:     entry.Spread,
			TargetDate: entry.TargetDate.Format("2006-01-02"),
		}
		if nerr := s.notify.MemberRegistered(ctx, ev); nerr != nil {
			s.log.Warn("member_registered publish", zap.Error(nerr))
		}
	}

	return s.done(buildEnvelope(nil, nil, nil, memberView(entry)))
}

func (s *Registration) done(env dto.Envelope) dto.Envelope {
	if s.OnResult != nil {
		s.OnResult(env.Status)
	}
	return env
}
