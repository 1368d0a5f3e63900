package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NFCeItem is one line of the fiscal document.
type NFCeItem struct {
	Descricao     string  `json:"descricao"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
}

// NFCePayload is sent by the worker pool to the NFC-e emission sidecar.
// The sidecar handles certificate signing and SEFAZ communication.
type NFCePayload struct {
	CNPJEmissor    string     `json:"cnpj_emissor"`
	VendaID        string     `json:"venda_id"`
	ValorTotal     float64    `json:"valor_total"`
	FormaPagamento string     `json:"forma_pagamento"`
	Itens          []NFCeItem `json:"itens"`
}

// NFCeResponse is returned by the sidecar after SEFAZ authorization.
type NFCeResponse struct {
	ChaveAcesso string `json:"chave_acesso"`
	Protocolo   string `json:"protocolo"`
	Resultado   string `json:"resultado"` // "autorizada" | "rejeitada"
	Motivo      string `json:"motivo,omitempty"`
}

// NFCeClient delegates fiscal emission to the sidecar over HTTP, keeping
// SEFAZ failures isolated from the core backend.
type NFCeClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewNFCeClient(sidecarURL string) *NFCeClient {
	return &NFCeClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Emitir sends a POST to the sidecar and returns the authorization response.
func (c *NFCeClient) Emitir(ctx context.Context, payload NFCePayload) (*NFCeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("nfce: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/emitir", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("nfce: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nfce: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nfce: sidecar returned %d", resp.StatusCode)
	}

	var result NFCeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("nfce: decode response: %w", err)
	}
	return &result, nil
}
