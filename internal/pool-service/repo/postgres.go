package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateName     = errors.New("name already taken")
	ErrDuplicateEmail    = errors.New("email already taken")
	ErrDuplicatePasscode = errors.New("passcode already taken")
	ErrSponsorTaken      = errors.New("sponsor already backs a bet")
)

// Postgres implementa operações de persistência de palpites e convites
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Insert grava um novo palpite; as unique constraints do banco são a
// fonte de verdade para unicidade de passcode, nome, e-mail e sponsor
func (p *Postgres) Insert(ctx context.Context, e *BetEntry) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (passcode,sponsor_id,name,email,spread,target_date,wager_payed)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.Passcode, e.SponsorID, e.Name, e.Email, e.Spread, e.TargetDate, e.WagerPayed,
	)
	return mapUniqueViolation(err)
}

// UpdateBet altera spread e data de um palpite existente pelo passcode
func (p *Postgres) UpdateBet(ctx context.Context, passcode string, spread int, target time.Time) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE bets SET spread=$1, target_date=$2, updated_at=NOW() WHERE passcode=$3`,
		spread, target, passcode,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByPasscode retorna o palpite identificado pelo passcode
func (p *Postgres) FindByPasscode(ctx context.Context, passcode string) (*BetEntry, error) {
	return p.findOne(ctx, `WHERE passcode=$1`, passcode)
}

// FindByName retorna o palpite com o nome exato informado
func (p *Postgres) FindByName(ctx context.Context, name string) (*BetEntry, error) {
	return p.findOne(ctx, `WHERE name=$1`, name)
}

// FindByEmail retorna o palpite com o e-mail exato informado
func (p *Postgres) FindByEmail(ctx context.Context, email string) (*BetEntry, error) {
	return p.findOne(ctx, `WHERE email=$1`, email)
}

func (p *Postgres) findOne(ctx context.Context, where string, arg any) (*BetEntry, error) {
	var e BetEntry
	err := p.db.QueryRowContext(ctx, `
		SELECT passcode, sponsor_id, name, email, spread, target_date, wager_payed, created_at, updated_at
		FROM bets `+where, arg,
	).Scan(&e.Passcode, &e.SponsorID, &e.Name, &e.Email, &e.Spread, &e.TargetDate, &e.WagerPayed, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SponsorUsed informa se algum palpite já referencia o sponsor
func (p *Postgres) SponsorUsed(ctx context.Context, sponsorID int64) (bool, error) {
	var used bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bets WHERE sponsor_id=$1)`, sponsorID,
	).Scan(&used)
	return used, err
}

// FindInvitation resolve um código de convite para o registro do sponsor
func (p *Postgres) FindInvitation(ctx context.Context, code string) (*Invitation, error) {
	var inv Invitation
	err := p.db.QueryRowContext(ctx,
		`SELECT code, sponsor_id, created_at FROM invitations WHERE code=$1`, code,
	).Scan(&inv.Code, &inv.SponsorID, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// mapUniqueViolation traduz violações de unique constraint (23505) para os
// sentinelas do repositório, identificando a constraint violada pelo nome
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "bets_pkey":
			return ErrDuplicatePasscode
		case "bets_name_key":
			return ErrDuplicateName
		case "bets_email_key":
			return ErrDuplicateEmail
		case "bets_sponsor_id_key":
			return ErrSponsorTaken
		}
	}
	return err
}
