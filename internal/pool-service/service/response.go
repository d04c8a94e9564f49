package service

import (
	"time"

	"github.com/radieske/prediction-pool-service/internal/pool-service/dto"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
)

// Mensagens fixas dos serviços
const (
	msgRegistrationClosed = "registration is currently closed"
	msgChangesClosed      = "changes are currently closed"
	msgInviteNotFound     = "invitation not found"
	msgInviteUsed         = "invitation already used"
	msgInviteUnavailable  = "cannot verify the invitation right now"
	msgLookupUnavailable  = "cannot look up the bet right now"
	msgStoreFailed        = "could not save the bet right now"
)

// buildEnvelope aplica a precedência error > nok > inviteIssue > ok.
// Apenas uma categoria aparece na resposta, ainda que várias estejam
// preenchidas; o member segue junto sempre que fornecido
func buildEnvelope(errs, issues, inviteIssues []string, member *dto.MemberView) dto.Envelope {
	env := dto.Envelope{
		Status: dto.StatusOK,
		Issues: []string{},
		Errors: []string{},
		Member: member,
	}
	switch {
	case len(errs) > 0:
		env.Status = dto.StatusError
		env.Errors = errs
	case len(issues) > 0:
		env.Status = dto.StatusNok
		env.Issues = issues
	case len(inviteIssues) > 0:
		env.Status = dto.StatusInviteIssue
		env.Issues = inviteIssues
	}
	return env
}

// MalformedRequest é o envelope para corpo de requisição estruturalmente
// inválido, rejeitado antes do pipeline de campos
func MalformedRequest() dto.Envelope {
	return buildEnvelope([]string{"malformed request"}, nil, nil, nil)
}

// collect acumula outcomes de validação nas listas de erros e issues
func collect(errs, issues *[]string, outs ...validate.Outcome) {
	e, i := validate.Collect(outs)
	*errs = append(*errs, e...)
	*issues = append(*issues, i...)
}

// memberView projeta o registro persistido na visão pública do membro
func memberView(e *repo.BetEntry) *dto.MemberView {
	return &dto.MemberView{
		Passcode: e.Passcode,
		Name:     e.Name,
		Bet: dto.Bet{
			Spread: e.Spread,
			Date: dto.Date{
				Year:  e.TargetDate.Year(),
				Month: int(e.TargetDate.Month()),
				Day:   e.TargetDate.Day(),
			},
		},
		IsWagerPayed: e.WagerPayed,
	}
}

// dateOf converte a data do envelope para o valor persistido
func dateOf(d dto.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
