package events

// MemberRegistered é publicado após uma inscrição persistida com sucesso.
// Consumido pelo notification-worker para envio do e-mail de boas-vindas.
type MemberRegistered struct {
	EventID    string `json:"event_id"`
	Passcode   string `json:"passcode"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Spread     int    `json:"spread"`
	TargetDate string `json:"target_date"` // formato YYYY-MM-DD
	TsUnixMs   int64  `json:"ts_unix_ms"`
}
