package invite

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
)

// Source resolve códigos de convite para registros de sponsor
type Source interface {
	FindInvitation(ctx context.Context, code string) (*repo.Invitation, error)
}

// Bets responde se um sponsor já patrocina algum palpite
type Bets interface {
	SponsorUsed(ctx context.Context, sponsorID int64) (bool, error)
}

// Ledger é a visão somente-leitura sobre convites: resolve código -> sponsor
// e verifica consumo. Convites são imutáveis, então resoluções positivas
// podem ser cacheadas no Redis com segurança
type Ledger struct {
	src   Source
	bets  Bets
	cache *redis.Client // opcional; nil desliga o cache
	ttl   time.Duration
}

// NewLedger constrói o ledger; cache pode ser nil
func NewLedger(src Source, bets Bets, cache *redis.Client, ttl time.Duration) *Ledger {
	return &Ledger{src: src, bets: bets, cache: cache, ttl: ttl}
}

func keyInvite(code string) string { return "invite:" + code }

// Resolve retorna o sponsor de um código de convite conhecido,
// ou repo.ErrNotFound para código desconhecido
func (l *Ledger) Resolve(ctx context.Context, code string) (int64, error) {
	if l.cache != nil {
		if v, err := l.cache.Get(ctx, keyInvite(code)).Result(); err == nil {
			if id, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return id, nil
			}
		}
		// redis.Nil ou indisponível: segue para o banco
	}

	inv, err := l.src.FindInvitation(ctx, code)
	if err != nil {
		return 0, err
	}

	if l.cache != nil {
		// best effort; falha de cache não afeta a resolução
		_ = l.cache.Set(ctx, keyInvite(code), strconv.FormatInt(inv.SponsorID, 10), l.ttl).Err()
	}
	return inv.SponsorID, nil
}

// SponsorUsed informa se o sponsor já patrocina algum palpite.
// Consulta sempre viva contra os palpites, nunca cacheada: o consumo é um
// fato derivado da existência do BetEntry
func (l *Ledger) SponsorUsed(ctx context.Context, sponsorID int64) (bool, error) {
	return l.bets.SponsorUsed(ctx, sponsorID)
}
