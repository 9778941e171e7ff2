package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/controle-fiscal/pkg/logger"
)

const defaultBaseURL = "https://cosmos.bluesoft.com.br/api"

// Client consulta o catálogo Cosmos para obter o CEST de um NCM
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewClient cria um novo cliente do catálogo a partir das variáveis de
// ambiente COSMOS_API_URL e COSMOS_API_KEY
func NewClient(logger logger.Logger) *Client {
	baseURL := os.Getenv("COSMOS_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  os.Getenv("COSMOS_API_KEY"),
		client:  &http.Client{},
		logger:  logger,
	}
}

// ncmResponse é o trecho relevante da resposta do catálogo
type ncmResponse struct {
	Code  string `json:"code"`
	CESTs []struct {
		Code string `json:"code"`
	} `json:"cests"`
}

// CESTByNCM busca o CEST de um NCM. Retorna found=false quando o catálogo
// não conhece o NCM ou não tem CEST associado; erro somente em falha de
// transporte ou resposta inesperada do servidor.
func (c *Client) CESTByNCM(ctx context.Context, ncm string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/ncms/%s", c.baseURL, url.PathEscape(ncm))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("falha ao criar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Cosmos-Token", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Propagar o contexto para o chamador distinguir timeout de queda
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, fmt.Errorf("falha na comunicação com o catálogo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("catálogo respondeu com status %d: %s", resp.StatusCode, string(body))
	}

	var data ncmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// Resposta malformada vale como "sem correspondência" para o NCM
		c.logger.Warn("resposta malformada do catálogo", "ncm", ncm, "error", err.Error())
		return "", false, nil
	}

	if len(data.CESTs) == 0 || data.CESTs[0].Code == "" {
		return "", false, nil
	}

	return data.CESTs[0].Code, true, nil
}

// WithTimeout define um timeout próprio do cliente HTTP, além do timeout
// por consulta aplicado via contexto pelo chamador
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.client.Timeout = d
	return c
}
