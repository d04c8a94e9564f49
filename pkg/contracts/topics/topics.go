package topics

const (
	// Notificações de cadastro
	MemberRegistered    = "member_registered"
	MemberRegisteredDLQ = "member_registered_dlq"
)
