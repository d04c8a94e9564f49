package token

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Alfabetos fixos: 19 consoantes e 5 vogais geram sílabas pronunciáveis
const (
	consonants = "bcdfghjklmnprstvwyz"
	vowels     = "aeiou"
	separator  = "-"
)

// Parametrizações usadas pelo serviço
const (
	PasscodeWords     = 3
	PasscodeSyllables = 2
	PasswordWords     = 2
	PasswordSyllables = 3
)

// Generate monta wordCount palavras de wordLength sílabas consoante+vogal,
// unidas por separador. A escolha de cada letra vem de crypto/rand: o
// passcode autoriza alterações no palpite, então a fonte precisa ser segura.
func Generate(wordCount, wordLength int) string {
	words := make([]string, wordCount)
	var sb strings.Builder
	for i := range words {
		sb.Reset()
		for j := 0; j < wordLength; j++ {
			sb.WriteByte(pick(consonants))
			sb.WriteByte(pick(vowels))
		}
		words[i] = sb.String()
	}
	return strings.Join(words, separator)
}

// NewPasscode gera o token de acesso de um palpite
func NewPasscode() string { return Generate(PasscodeWords, PasscodeSyllables) }

// NewPassword gera uma senha temporária
func NewPassword() string { return Generate(PasswordWords, PasswordSyllables) }

// pick sorteia uniformemente uma letra do alfabeto
func pick(alphabet string) byte {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		// crypto/rand só falha se a fonte de entropia do sistema falhar
		panic(err)
	}
	return alphabet[n.Int64()]
}
