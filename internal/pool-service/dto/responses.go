package dto

// Status do envelope, em ordem de precedência: error > nok > inviteIssue > ok
const (
	StatusOK          = "ok"
	StatusNok         = "nok"
	StatusError       = "error"
	StatusInviteIssue = "inviteIssue"
)

// Envelope é o formato uniforme de resposta das cinco operações
type Envelope struct {
	Status string      `json:"status"`
	Issues []string    `json:"issues"`
	Errors []string    `json:"errors"`
	Member *MemberView `json:"member,omitempty"`
}

// MemberView é a projeção pública de um palpite; e-mail e sponsor ficam de fora
type MemberView struct {
	Passcode     string `json:"passcode"`
	Name         string `json:"name"`
	Bet          Bet    `json:"bet"`
	IsWagerPayed bool   `json:"isWagerPayed"`
}
