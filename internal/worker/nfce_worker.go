package worker

// nfce_worker.go
// Processes fiscal emission jobs from QueueNFCe. Sends a POST to the NFC-e
// sidecar and stores the access key on the venda. A failed emission never
// touches the sale itself — the venda stays fiscal_status='pendente' and the
// retry cron picks it up later.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chefcomanda/internal/infra"
	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NFCeJobPayload is the job envelope sent to QueueNFCe.
type NFCeJobPayload struct {
	VendaID      string  `json:"venda_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// NFCeWorker calls the fiscal sidecar, updates the venda with the result,
// generates the PDF receipt and optionally enqueues the customer email.
type NFCeWorker struct {
	nfceClient      *infra.NFCeClient
	vendaRepo       repository.VendaRepository
	dispatcher      *Dispatcher
	pdfStoragePath  string
	cnpjEmissor     string
	nomeRestaurante string
}

func NewNFCeWorker(
	nfceClient *infra.NFCeClient,
	vendaRepo repository.VendaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	cnpjEmissor string,
	nomeRestaurante string,
) *NFCeWorker {
	return &NFCeWorker{
		nfceClient:      nfceClient,
		vendaRepo:       vendaRepo,
		dispatcher:      dispatcher,
		pdfStoragePath:  pdfStoragePath,
		cnpjEmissor:     cnpjEmissor,
		nomeRestaurante: nomeRestaurante,
	}
}

// Process handles a single emission job:
//  1. Fetch the venda with comanda items preloaded
//  2. Call the sidecar with exponential backoff (max 3 attempts)
//  3. Update fiscal_status / chave_nfce, or schedule the retry cron
//  4. Generate the PDF receipt
//  5. Optionally enqueue the customer email
func (w *NFCeWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NFCeJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("nfce_worker: invalid payload")
		return
	}

	vendaID, err := uuid.Parse(payload.VendaID)
	if err != nil {
		log.Error().Str("venda_id", payload.VendaID).Msg("nfce_worker: invalid venda_id")
		return
	}

	venda, err := w.vendaRepo.BuscarPorID(ctx, vendaID)
	if err != nil {
		log.Error().Err(err).Str("venda_id", payload.VendaID).Msg("nfce_worker: venda not found")
		return
	}

	var nfceResp *infra.NFCeResponse
	emitErr := withRetry(ctx, 3, func(attempt int) error {
		resp, err := w.nfceClient.Emitir(ctx, buildNFCePayload(venda, w.cnpjEmissor))
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("venda_id", payload.VendaID).
				Msg("nfce_worker: emission attempt failed, retrying")
			return err
		}
		nfceResp = resp
		return nil
	})

	switch {
	case emitErr != nil:
		// Stays pendente; the retry cron takes over from here
		errMsg := emitErr.Error()
		venda.LastError = &errMsg
		nextRetry := time.Now().Add(computeRetryBackoff(1))
		venda.NextRetryAt = &nextRetry
		_ = w.vendaRepo.Atualizar(ctx, venda)
		log.Error().Err(emitErr).Str("venda_id", payload.VendaID).Msg("nfce_worker: sidecar failed after all attempts, scheduled for retry cron")

	case nfceResp.Resultado == "autorizada":
		venda.FiscalStatus = model.FiscalEmitida
		chave := nfceResp.ChaveAcesso
		venda.ChaveNFCe = &chave
		venda.LastError = nil
		venda.NextRetryAt = nil
		_ = w.vendaRepo.Atualizar(ctx, venda)
		log.Info().Str("chave", chave).Str("venda_id", payload.VendaID).Msg("nfce_worker: NFC-e autorizada")

	default:
		venda.FiscalStatus = model.FiscalRejeitada
		motivo := fmt.Sprintf("SEFAZ rejeitou: %s", nfceResp.Motivo)
		venda.LastError = &motivo
		venda.NextRetryAt = nil
		_ = w.vendaRepo.Atualizar(ctx, venda)
		log.Warn().Str("motivo", nfceResp.Motivo).Str("venda_id", payload.VendaID).Msg("nfce_worker: NFC-e rejeitada")
	}

	if venda.Comanda == nil {
		log.Warn().Str("venda_id", payload.VendaID).Msg("nfce_worker: comanda not preloaded, skipping PDF")
		return
	}

	pdfPath, pdfErr := infra.GerarReciboPDF(venda, venda.Comanda, w.nomeRestaurante, w.pdfStoragePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("venda_id", payload.VendaID).Msg("nfce_worker: PDF generation failed")
	} else {
		venda.PDFPath = &pdfPath
		_ = w.vendaRepo.Atualizar(ctx, venda)
	}

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" && pdfPath != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("%s — Recibo da comanda #%d", w.nomeRestaurante, venda.Comanda.Numero),
			Body:    fmt.Sprintf("Segue em anexo o recibo do seu consumo.\nTotal: R$ %s", venda.ValorFinal.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("nfce_worker: failed to enqueue email")
		}
	}
}

// buildNFCePayload maps the venda and its non-cancelled items to the sidecar
// wire format.
func buildNFCePayload(venda *model.Venda, cnpjEmissor string) infra.NFCePayload {
	payload := infra.NFCePayload{
		CNPJEmissor:    cnpjEmissor,
		VendaID:        venda.ID.String(),
		ValorTotal:     venda.ValorFinal.InexactFloat64(),
		FormaPagamento: venda.FormaPagamento,
	}
	if venda.Comanda == nil {
		return payload
	}
	for _, item := range venda.Comanda.Itens {
		if item.Status == model.ItemCancelado {
			continue
		}
		descricao := ""
		if item.Produto != nil {
			descricao = item.Produto.Nome
		}
		payload.Itens = append(payload.Itens, infra.NFCeItem{
			Descricao:     descricao,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario.InexactFloat64(),
		})
	}
	return payload
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
