package auth

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Erros da verificação de credenciais
var (
	ErrMissingCredential  = errors.New("credencial do contador não configurada")
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
)

// Credential é a conta do contador configurada por ambiente. O sistema
// tem um único operador, então não há tabela de usuários.
type Credential struct {
	Email        string
	Name         string
	PasswordHash string
}

// CredentialFromEnv carrega a credencial do contador das variáveis
// AUTH_EMAIL, AUTH_NAME e AUTH_PASSWORD_HASH (hash bcrypt)
func CredentialFromEnv() (*Credential, error) {
	email := os.Getenv("AUTH_EMAIL")
	hash := os.Getenv("AUTH_PASSWORD_HASH")
	if email == "" || hash == "" {
		return nil, ErrMissingCredential
	}

	name := os.Getenv("AUTH_NAME")
	if name == "" {
		name = "Contador"
	}

	return &Credential{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}, nil
}

// Verify compara email e senha com a credencial configurada
func (c *Credential) Verify(email, password string) error {
	if email != c.Email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword gera o hash bcrypt de uma senha em texto claro
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
