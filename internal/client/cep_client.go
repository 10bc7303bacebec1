package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"frota-service/internal/config"
)

// Address é o retorno do serviço de CEP consumido pelo autopreenchimento de
// endereço do painel.
type Address struct {
	ZipCode      string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	NotFound     bool   `json:"erro,omitempty"`
}

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// ErrInvalidCEP indica código malformado; qualquer outro erro do Lookup é
// falha do serviço remoto.
var ErrInvalidCEP = errors.New("invalid cep")

type CEPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCEPClient(cfg *config.Config) *CEPClient {
	return &CEPClient{
		baseURL: cfg.ExternalServices.CEPServiceURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup consulta o CEP (8 dígitos, sem hífen). CEP inexistente devolve nil
// sem erro; o chamador decide como apresentar.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	if !cepPattern.MatchString(cep) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCEP, cep)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cep service returned %d: %s", resp.StatusCode, string(body))
	}

	var address Address
	if err := json.NewDecoder(resp.Body).Decode(&address); err != nil {
		return nil, fmt.Errorf("failed to decode cep response: %w", err)
	}
	if address.NotFound {
		return nil, nil
	}
	return &address, nil
}
