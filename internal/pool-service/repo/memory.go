package repo

import (
	"context"
	"sync"
	"time"
)

// Memory é uma implementação em memória do repositório, com as mesmas
// garantias de unicidade do Postgres. Usada nos testes de serviço.
type Memory struct {
	mu      sync.Mutex
	bets    map[string]*BetEntry // por passcode
	invites map[string]Invitation
}

// NewMemory retorna um repositório em memória vazio
func NewMemory() *Memory {
	return &Memory{
		bets:    make(map[string]*BetEntry),
		invites: make(map[string]Invitation),
	}
}

// AddInvitation registra um convite (papel do processo de onboarding)
func (m *Memory) AddInvitation(code string, sponsorID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites[code] = Invitation{Code: code, SponsorID: sponsorID, CreatedAt: time.Now()}
}

// Insert grava um novo palpite aplicando as mesmas regras de unicidade do banco
func (m *Memory) Insert(_ context.Context, e *BetEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bets[e.Passcode]; ok {
		return ErrDuplicatePasscode
	}
	for _, b := range m.bets {
		if b.Name == e.Name {
			return ErrDuplicateName
		}
		if b.Email == e.Email {
			return ErrDuplicateEmail
		}
		if b.SponsorID != nil && e.SponsorID != nil && *b.SponsorID == *e.SponsorID {
			return ErrSponsorTaken
		}
	}

	cp := *e
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.bets[e.Passcode] = &cp
	return nil
}

// UpdateBet altera spread e data de um palpite existente
func (m *Memory) UpdateBet(_ context.Context, passcode string, spread int, target time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bets[passcode]
	if !ok {
		return ErrNotFound
	}
	b.Spread = spread
	b.TargetDate = target
	b.UpdatedAt = time.Now()
	return nil
}

// FindByPasscode retorna uma cópia do palpite identificado pelo passcode
func (m *Memory) FindByPasscode(_ context.Context, passcode string) (*BetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bets[passcode]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

// FindByName retorna uma cópia do palpite com o nome exato informado
func (m *Memory) FindByName(_ context.Context, name string) (*BetEntry, error) {
	return m.findBy(func(b *BetEntry) bool { return b.Name == name })
}

// FindByEmail retorna uma cópia do palpite com o e-mail exato informado
func (m *Memory) FindByEmail(_ context.Context, email string) (*BetEntry, error) {
	return m.findBy(func(b *BetEntry) bool { return b.Email == email })
}

func (m *Memory) findBy(match func(*BetEntry) bool) (*BetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bets {
		if match(b) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// SponsorUsed informa se algum palpite já referencia o sponsor
func (m *Memory) SponsorUsed(_ context.Context, sponsorID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bets {
		if b.SponsorID != nil && *b.SponsorID == sponsorID {
			return true, nil
		}
	}
	return false, nil
}

// FindInvitation resolve um código de convite para o registro do sponsor
func (m *Memory) FindInvitation(_ context.Context, code string) (*Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invites[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &inv, nil
}

// Len retorna a quantidade de palpites gravados (apoio aos testes)
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bets)
}
