package repo

import "time"

// BetEntry é o registro persistido de um palpite no Postgres.
// O passcode gerado é a chave primária e o único token de acesso do participante.
type BetEntry struct {
	Passcode   string
	SponsorID  *int64 // convite que patrocinou a inscrição; nunca reatribuído
	Name       string
	Email      string
	Spread     int
	TargetDate time.Time // somente a parte de data é relevante
	WagerPayed bool      // alterado apenas pelo fluxo de cobrança, fora deste serviço
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Invitation é o registro de convite criado pelo processo de onboarding.
// Somente leitura aqui; o "consumo" é derivado da existência de um BetEntry
// com o mesmo sponsor_id, não de uma flag gravada.
type Invitation struct {
	Code      string
	SponsorID int64
	CreatedAt time.Time
}
