package validate

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
)

// Limites de tamanho do nome, contados em code points
const (
	minNameLen = 3
	maxNameLen = 20
)

// Pontuação permitida no nome, além de letras latinas e dígitos
const namePunctuation = " '-_."

// Directory é a visão somente-leitura dos palpites existentes,
// usada nas checagens consultivas de unicidade
type Directory interface {
	FindByName(ctx context.Context, name string) (*repo.BetEntry, error)
	FindByEmail(ctx context.Context, email string) (*repo.BetEntry, error)
}

// Pipeline aplica as regras sintáticas e semânticas sobre os campos de um
// palpite. Sem estado entre chamadas; a unicidade é consultiva (a fonte de
// verdade são as constraints do banco no momento do insert)
type Pipeline struct {
	dir           Directory
	campaignStart time.Time
	campaignEnd   time.Time
}

// New constrói o pipeline com a janela da campanha
func New(dir Directory, campaignStart, campaignEnd time.Time) *Pipeline {
	return &Pipeline{dir: dir, campaignStart: campaignStart, campaignEnd: campaignEnd}
}

// ValidateName roda todas as checagens sintáticas do nome e, somente se todas
// passarem, a checagem consultiva de unicidade
func (p *Pipeline) ValidateName(ctx context.Context, candidate string) []Outcome {
	var outs []Outcome

	if bad := forbiddenRunes(candidate); bad != "" {
		outs = append(outs, Issuef("name contains forbidden symbols: %s", bad))
	}
	if strings.TrimSpace(candidate) != candidate {
		outs = append(outs, Issuef("name must not begin or end with whitespace"))
	}
	switch n := utf8.RuneCountInString(candidate); {
	case n < minNameLen:
		outs = append(outs, Issuef("name must have at least %d symbols", minNameLen))
	case n > maxNameLen:
		outs = append(outs, Issuef("name must have at most %d symbols", maxNameLen))
	}
	if len(outs) > 0 {
		return outs
	}

	existing, err := p.dir.FindByName(ctx, candidate)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return []Outcome{Ok()}
	case err != nil:
		return []Outcome{Errf("cannot verify the name right now")}
	default:
		return []Outcome{Issuef("name %q is already taken", existing.Name)}
	}
}

// ValidateEmail checa a sintaxe do endereço e, se válida, a unicidade consultiva
func (p *Pipeline) ValidateEmail(ctx context.Context, candidate string) []Outcome {
	addr, err := mail.ParseAddress(candidate)
	if err != nil || addr.Address != candidate {
		return []Outcome{Issuef("%q is not a valid email address", candidate)}
	}

	existing, err := p.dir.FindByEmail(ctx, candidate)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return []Outcome{Ok()}
	case err != nil:
		return []Outcome{Errf("cannot verify the email right now")}
	default:
		return []Outcome{Issuef("email %q is already registered", existing.Email)}
	}
}

// ValidateConfidence aceita um spread inteiro entre 0 e 100
func (p *Pipeline) ValidateConfidence(spread int) Outcome {
	if spread < 0 || spread > 100 {
		return Issuef("spread must be an integer between 0 and 100")
	}
	return Ok()
}

// ValidateDate aceita uma data de calendário real dentro da janela da campanha
func (p *Pipeline) ValidateDate(year, month, day int) Outcome {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return Issuef("%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	if d.Before(p.campaignStart) || d.After(p.campaignEnd) {
		return Issuef("date must fall between %s and %s",
			p.campaignStart.Format("2006-01-02"), p.campaignEnd.Format("2006-01-02"))
	}
	return Ok()
}

// forbiddenRunes lista os símbolos fora da allow-list, sem repetição,
// na ordem em que aparecem, separados por espaço
func forbiddenRunes(s string) string {
	var bad []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if allowedRune(r) || seen[r] {
			continue
		}
		seen[r] = true
		bad = append(bad, r)
	}
	if len(bad) == 0 {
		return ""
	}
	parts := make([]string, len(bad))
	for i, r := range bad {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// allowedRune aceita letras latinas (incluindo os blocos estendidos),
// dígitos e a pontuação da allow-list
func allowedRune(r rune) bool {
	return unicode.Is(unicode.Latin, r) ||
		unicode.IsDigit(r) ||
		strings.ContainsRune(namePunctuation, r)
}
