package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/realtime"
	"chefcomanda/internal/repository"
	"chefcomanda/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrComandaJaFaturada = errors.New("a comanda já possui venda registrada")
	ErrDescontoInvalido  = errors.New("desconto não pode exceder o valor total")
)

type VendaService interface {
	Finalizar(ctx context.Context, op Operador, req dto.FinalizarVendaRequest) (*dto.VendaResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	comandaRepo repository.ComandaRepository
	mesaRepo    repository.MesaRepository
	turnoRepo   repository.TurnoRepository
	insumoRepo  repository.InsumoRepository
	rt          realtime.Publisher
	dispatcher  *worker.Dispatcher
}

func NewVendaService(
	repo repository.VendaRepository,
	comandaRepo repository.ComandaRepository,
	mesaRepo repository.MesaRepository,
	turnoRepo repository.TurnoRepository,
	insumoRepo repository.InsumoRepository,
	rt realtime.Publisher,
	dispatcher *worker.Dispatcher,
) VendaService {
	return &vendaService{
		repo:        repo,
		comandaRepo: comandaRepo,
		mesaRepo:    mesaRepo,
		turnoRepo:   turnoRepo,
		insumoRepo:  insumoRepo,
		rt:          rt,
		dispatcher:  dispatcher,
	}
}

// ── Finalizar ─────────────────────────────────────────────────────────────────
// Closes a comanda through the POS in ONE transaction:
//  1. active turno required
//  2. comanda must be open and not yet billed
//  3. valor_final = valor_total − desconto (desconto capped at total)
//  4. BEGIN TX: venda insert → comanda fechada → mesa livre → insumo baixa
//  5. COMMIT, then async NFC-e + auditoria jobs
//
// The venda insert comes first so a duplicate close loses on the unique
// comanda_id index and rolls the whole thing back.

func (s *vendaService) Finalizar(ctx context.Context, op Operador, req dto.FinalizarVendaRequest) (*dto.VendaResponse, error) {
	comandaID, err := uuid.Parse(req.ComandaID)
	if err != nil {
		return nil, fmt.Errorf("comanda_id inválido: %w", err)
	}

	turno, err := s.turnoRepo.BuscarAtivo(ctx)
	if err != nil {
		return nil, ErrSemTurnoAtivo
	}

	comanda, err := s.comandaRepo.BuscarPorID(ctx, comandaID)
	if err != nil {
		return nil, ErrComandaNaoEncontrada
	}
	// Advisory only: gives a clean 409 to the common case. The real guarantee
	// is the unique index on vendas.comanda_id, hit by the insert in the tx.
	if _, err := s.repo.BuscarPorComanda(ctx, comandaID); err == nil {
		return nil, ErrComandaJaFaturada
	}
	if comanda.Status == model.ComandaFechada || comanda.Status == model.ComandaCancelada {
		return nil, ErrComandaFechada
	}
	if !temItensAtivos(comanda) {
		return nil, ErrSemItensAtivos
	}

	desconto := req.ValorDesconto
	if desconto.IsNegative() {
		return nil, errors.New("valor_desconto não pode ser negativo")
	}
	if desconto.GreaterThan(comanda.ValorTotal) {
		return nil, ErrDescontoInvalido
	}
	valorFinal := comanda.ValorTotal.Sub(desconto)

	var venda model.Venda
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venda = model.Venda{
			ComandaID:      comanda.ID,
			TurnoID:        turno.ID,
			PerfilID:       op.PerfilID,
			FuncionarioID:  op.FuncionarioID,
			ValorBruto:     comanda.ValorTotal,
			ValorDesconto:  desconto,
			ValorFinal:     valorFinal,
			FormaPagamento: req.FormaPagamento,
			FiscalStatus:   model.FiscalPendente,
		}
		if err := s.repo.CriarTx(tx, &venda); err != nil {
			return err
		}

		if err := s.comandaRepo.FecharTx(tx, comanda.ID, time.Now()); err != nil {
			return err
		}

		if comanda.MesaID != nil {
			if err := s.mesaRepo.AtualizarStatusTx(tx, *comanda.MesaID, model.MesaLivre); err != nil {
				return err
			}
		}

		return s.baixarInsumosTx(ctx, tx, comanda, &venda)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("vendas", realtime.EventoInsert, venda.ID)
	s.rt.Publicar("comandas", realtime.EventoUpdate, comanda.ID)
	if comanda.MesaID != nil {
		s.rt.Publicar("mesas", realtime.EventoUpdate, *comanda.MesaID)
	}

	// Async NFC-e emission + audit — best effort, never blocks the sale
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueNFCe(ctx, worker.NFCeJobPayload{
			VendaID:      venda.ID.String(),
			ClienteEmail: req.ClienteEmail,
		})
		detalhes := fmt.Sprintf("comanda=%d valor=R$ %s forma=%s",
			comanda.Numero, valorFinal.StringFixed(2), req.FormaPagamento)
		_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{
			Acao:          "venda.finalizada",
			Recurso:       "vendas",
			PerfilID:      op.PerfilID,
			FuncionarioID: op.FuncionarioID,
			Detalhes:      &detalhes,
		})
	}

	return vendaToResponse(&venda, comanda.Numero), nil
}

// baixarInsumosTx consumes the insumos linked to every sold produto, creating
// one SaidaEstoque per vínculo inside the sale transaction.
func (s *vendaService) baixarInsumosTx(ctx context.Context, tx *gorm.DB, comanda *model.Comanda, venda *model.Venda) error {
	for i := range comanda.Itens {
		item := &comanda.Itens[i]
		if item.Status == model.ItemCancelado {
			continue
		}
		vinculos, err := s.insumoRepo.ListarVinculosPorProduto(ctx, item.ProdutoID)
		if err != nil {
			return err
		}
		for _, v := range vinculos {
			consumo := v.Quantidade.Mul(decimal.NewFromInt(int64(item.Quantidade)))
			if err := s.insumoRepo.AjustarEstoqueTx(tx, v.InsumoID, consumo.Neg()); err != nil {
				return err
			}
			motivo := fmt.Sprintf("Venda comanda #%d", comanda.Numero)
			saida := model.SaidaEstoque{
				InsumoID:     v.InsumoID,
				Quantidade:   consumo,
				Tipo:         "venda",
				Motivo:       &motivo,
				ReferenciaID: &venda.ID,
			}
			if err := s.insumoRepo.CriarSaidaTx(tx, &saida); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *vendaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("venda não encontrada")
	}
	numero := 0
	if venda.Comanda != nil {
		numero = venda.Comanda.Numero
	}
	return vendaToResponse(venda, numero), nil
}

// Listar returns paginated vendas; default filter is today.
func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vendas, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		numero := 0
		if vendas[i].Comanda != nil {
			numero = vendas[i].Comanda.Numero
		}
		data = append(data, *vendaToResponse(&vendas[i], numero))
	}
	return &dto.VendaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func vendaToResponse(v *model.Venda, comandaNumero int) *dto.VendaResponse {
	return &dto.VendaResponse{
		ID:             v.ID.String(),
		ComandaID:      v.ComandaID.String(),
		ComandaNumero:  comandaNumero,
		TurnoID:        v.TurnoID.String(),
		ValorBruto:     v.ValorBruto,
		ValorDesconto:  v.ValorDesconto,
		ValorFinal:     v.ValorFinal,
		FormaPagamento: v.FormaPagamento,
		FiscalStatus:   v.FiscalStatus,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
}
