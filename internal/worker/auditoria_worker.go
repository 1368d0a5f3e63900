package worker

// auditoria_worker.go
// Persists audit-log rows asynchronously so request paths never block on
// audit writes.

import (
	"context"
	"encoding/json"

	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditoriaJobPayload is the job envelope sent to QueueAuditoria.
type AuditoriaJobPayload struct {
	Acao          string     `json:"acao"`
	Recurso       string     `json:"recurso"`
	PerfilID      *uuid.UUID `json:"perfil_id,omitempty"`
	FuncionarioID *uuid.UUID `json:"funcionario_id,omitempty"`
	Detalhes      *string    `json:"detalhes,omitempty"`
}

// AuditoriaWorker writes audit rows from QueueAuditoria.
type AuditoriaWorker struct {
	logRepo repository.LogRepository
}

func NewAuditoriaWorker(logRepo repository.LogRepository) *AuditoriaWorker {
	return &AuditoriaWorker{logRepo: logRepo}
}

func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AuditoriaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("auditoria_worker: invalid payload")
		return
	}
	if payload.Acao == "" {
		log.Warn().Msg("auditoria_worker: empty acao, skipping")
		return
	}

	entry := &model.Log{
		Acao:          payload.Acao,
		Recurso:       payload.Recurso,
		PerfilID:      payload.PerfilID,
		FuncionarioID: payload.FuncionarioID,
		Detalhes:      payload.Detalhes,
	}
	if err := w.logRepo.Criar(ctx, entry); err != nil {
		log.Error().Err(err).Str("acao", payload.Acao).Msg("auditoria_worker: failed to persist log")
	}
}
