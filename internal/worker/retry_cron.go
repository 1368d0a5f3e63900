package worker

// retry_cron.go
// Background goroutine that periodically re-attempts NFC-e emission for
// vendas stuck in fiscal_status='pendente' with next_retry_at in the past.
// Uses the circuit breaker to avoid hammering a downed sidecar.

import (
	"context"
	"fmt"
	"time"

	"chefcomanda/internal/infra"
	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxVendaRetries caps cron re-attempts before a venda goes to
	// fiscal_status='erro' and the DLQ.
	MaxVendaRetries = 5
)

// computeRetryBackoff returns the wait before the next cron attempt:
// 1m, 2m, 4m, 8m, capped at 15m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > 15*time.Minute {
		backoff = 15 * time.Minute
	}
	return backoff
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	VendaRepo   repository.VendaRepository
	NFCeClient  *infra.NFCeClient
	CB          *infra.CircuitBreaker
	RDB         *redis.Client
	CNPJEmissor string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending vendas, and re-attempts emission through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed sidecar
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	vendas, err := cfg.VendaRepo.ListPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(vendas) == 0 {
		return
	}

	log.Info().Int("count", len(vendas)).Msg("retry_cron: processing pending vendas")

	for i := range vendas {
		venda := &vendas[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		var nfceResp *infra.NFCeResponse
		cbErr := cfg.CB.Execute(func() error {
			resp, err := cfg.NFCeClient.Emitir(ctx, buildNFCePayload(venda, cfg.CNPJEmissor))
			if err != nil {
				return err
			}
			nfceResp = resp
			return nil
		})

		if cbErr != nil {
			venda.RetryCount++
			errMsg := cbErr.Error()
			venda.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(venda.RetryCount))
			venda.NextRetryAt = &nextRetry

			if venda.RetryCount >= MaxVendaRetries {
				venda.FiscalStatus = model.FiscalErro
				venda.NextRetryAt = nil
				log.Error().
					Str("venda_id", venda.ID.String()).
					Int("retries", venda.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to erro/DLQ")

				payload := fmt.Sprintf(`{"venda_id":"%s"}`, venda.ID)
				SendToDLQ(ctx, cfg.RDB, QueueNFCe, JobNFCe, []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxVendaRetries, errMsg),
					venda.RetryCount)
			} else {
				log.Warn().
					Str("venda_id", venda.ID.String()).
					Int("retry_count", venda.RetryCount).
					Time("next_retry_at", *venda.NextRetryAt).
					Msg("retry_cron: emission retry failed, scheduled next attempt")
			}

			_ = cfg.VendaRepo.Atualizar(ctx, venda)
			continue
		}

		if nfceResp.Resultado == "autorizada" {
			venda.FiscalStatus = model.FiscalEmitida
			chave := nfceResp.ChaveAcesso
			venda.ChaveNFCe = &chave
			venda.NextRetryAt = nil
			venda.LastError = nil
			_ = cfg.VendaRepo.Atualizar(ctx, venda)

			log.Info().
				Str("chave", chave).
				Str("venda_id", venda.ID.String()).
				Int("total_retries", venda.RetryCount).
				Msg("retry_cron: NFC-e autorizada after retry")
		} else {
			venda.FiscalStatus = model.FiscalRejeitada
			motivo := fmt.Sprintf("SEFAZ rejeitou (retry): %s", nfceResp.Motivo)
			venda.LastError = &motivo
			venda.NextRetryAt = nil
			_ = cfg.VendaRepo.Atualizar(ctx, venda)
			log.Warn().
				Str("motivo", nfceResp.Motivo).
				Str("venda_id", venda.ID.String()).
				Msg("retry_cron: NFC-e rejeitada on retry")
		}
	}
}
