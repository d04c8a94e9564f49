package validate

import "fmt"

// Level classifica o resultado de uma verificação
type Level int

const (
	// LevelOK indica valor aceito
	LevelOK Level = iota
	// LevelIssue indica problema corrigível pelo usuário
	LevelIssue
	// LevelError indica falha de sistema: a verificação não pôde ser concluída
	LevelError
)

// Outcome é o resultado de uma verificação individual do pipeline
type Outcome struct {
	Level   Level
	Message string
}

// Ok retorna um resultado aceito
func Ok() Outcome { return Outcome{Level: LevelOK} }

// Issuef retorna um problema corrigível pelo usuário
func Issuef(format string, args ...any) Outcome {
	return Outcome{Level: LevelIssue, Message: fmt.Sprintf(format, args...)}
}

// Errf retorna uma falha de sistema
func Errf(format string, args ...any) Outcome {
	return Outcome{Level: LevelError, Message: fmt.Sprintf(format, args...)}
}

// Collect separa outcomes em listas ordenadas de erros e issues,
// descartando os aceitos
func Collect(outs []Outcome) (errors []string, issues []string) {
	for _, o := range outs {
		switch o.Level {
		case LevelError:
			errors = append(errors, o.Message)
		case LevelIssue:
			issues = append(issues, o.Message)
		}
	}
	return errors, issues
}
