package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarMesaRequest struct {
	Numero     int `json:"numero"     validate:"required,min=1"`
	Capacidade int `json:"capacidade" validate:"required,min=1,max=50"`
}

type AtualizarMesaRequest struct {
	Capacidade int    `json:"capacidade" validate:"omitempty,min=1,max=50"`
	Status     string `json:"status"     validate:"omitempty,oneof=livre reservada manutencao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MesaResponse struct {
	ID         string `json:"id"`
	Numero     int    `json:"numero"`
	Capacidade int    `json:"capacidade"`
	Status     string `json:"status"`
	Ativo      bool   `json:"ativo"`
	// ComandaAberta carries the open comanda id when the mesa is occupied
	ComandaAberta *string `json:"comanda_aberta,omitempty"`
}
