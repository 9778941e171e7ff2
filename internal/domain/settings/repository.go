package settings

import (
	"context"
)

// Repository define a interface para o registro único de configurações fiscais
type Repository interface {
	// Get retorna a configuração vigente, criando o registro padrão na
	// primeira leitura
	Get(ctx context.Context) (*Settings, error)

	// Save persiste a configuração; a escrita é serializada no registro único
	Save(ctx context.Context, s *Settings) error
}
