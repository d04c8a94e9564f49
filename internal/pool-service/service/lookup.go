package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
)

// Lookup cobre as operações de consulta: busca por passcode e as
// verificações avulsas de nome e e-mail usadas pelo formulário
type Lookup struct {
	store Store
	pipe  *validate.Pipeline

	// OnResult recebe o status final de cada requisição (métricas)
	OnResult func(status string)
}

// NewLookup constrói o serviço de consulta
func NewLookup(store Store, pipe *validate.Pipeline) *Lookup {
	return &Lookup{store: store, pipe: pipe}
}

// Lookup retorna a visão do membro para um passcode emitido
func (s *Lookup) Lookup(ctx context.Context, req dto.LookupRequest) dto.Envelope {
	entry, err := s.store.FindByPasscode(ctx, req.Passcode)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return s.done(buildEnvelope(nil,
			[]string{fmt.Sprintf("no bet found for passcode %q", req.Passcode)}, nil, nil))
	case err != nil:
		return s.done(buildEnvelope([]string{msgLookupUnavailable}, nil, nil, nil))
	}
	return s.done(buildEnvelope(nil, nil, nil, memberView(entry)))
}

// VerifyName roda o pipeline de nome isoladamente
func (s *Lookup) VerifyName(ctx context.Context, req dto.VerifyNameRequest) dto.Envelope {
	errs, issues := validate.Collect(s.pipe.ValidateName(ctx, req.Name))
	return s.done(buildEnvelope(errs, issues, nil, nil))
}

// VerifyEmail roda o pipeline de e-mail isoladamente
func (s *Lookup) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) dto.Envelope {
	errs, issues := validate.Collect(s.pipe.ValidateEmail(ctx, req.Email))
	return s.done(buildEnvelope(errs, issues, nil, nil))
}

func (s *Lookup) done(env dto.Envelope) dto.Envelope {
	if s.OnResult != nil {
		s.OnResult(env.Status)
	}
	return env
}
