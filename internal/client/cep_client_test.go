package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota-service/internal/config"
)

func newTestClient(baseURL string) *CEPClient {
	cfg := &config.Config{}
	cfg.ExternalServices.CEPServiceURL = baseURL
	return NewCEPClient(cfg)
}

func TestCEPLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/13010000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"13010-000","logradouro":"Rua Regente Feijó","localidade":"Campinas","uf":"SP"}`))
	}))
	defer server.Close()

	address, err := newTestClient(server.URL).Lookup(context.Background(), "13010000")

	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, "Campinas", address.City)
	assert.Equal(t, "SP", address.State)
}

func TestCEPLookup_MalformedCode(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")

	for _, code := range []string{"", "1301", "13010-000", "abcdefgh"} {
		_, err := client.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidCEP, "code %q", code)
	}
}

func TestCEPLookup_UpstreamFailureIsNotInvalidCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Lookup(context.Background(), "13010000")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCEP)
}

func TestCEPLookup_UnknownCodeReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer server.Close()

	address, err := newTestClient(server.URL).Lookup(context.Background(), "99999999")

	require.NoError(t, err)
	assert.Nil(t, address)
}
