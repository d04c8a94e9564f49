package dto

// Date é a data do palpite no formato do envelope
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Bet agrupa spread e data, tanto na entrada quanto na visão do membro
type Bet struct {
	Spread int  `json:"spread"`
	Date   Date `json:"date"`
}

type RegisterRequest struct {
	Invite string `json:"invite"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bet    Bet    `json:"bet"`
}

type UpdateRequest struct {
	Passcode string `json:"passcode"`
	Bet      Bet    `json:"bet"`
}

type LookupRequest struct {
	Passcode string `json:"passcode"`
}

type VerifyNameRequest struct {
	Name string `json:"name"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
}
