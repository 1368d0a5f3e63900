package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// Operador identifies who performed an operation. Exactly one of the two ids
// is set, mirroring the dual login paths.
type Operador struct {
	PerfilID      *uuid.UUID
	FuncionarioID *uuid.UUID
}

// Item status transitions are forward-only. Each status maps to its single
// successor; cancelado is reachable from any pre-entregue status via
// CancelarItem, never through Avancar.
var itemTransicao = map[string]string{
	model.ItemAguardando: model.ItemPreparando,
	model.ItemPreparando: model.ItemPronto,
	model.ItemPronto:     model.ItemEntregue,
}

var (
	ErrComandaNaoEncontrada = errors.New("comanda não encontrada")
	ErrComandaFechada       = errors.New("a comanda já está fechada ou cancelada")
	ErrMesaIndisponivel     = errors.New("a mesa não está disponível para lançamentos")
	ErrTransicaoInvalida    = errors.New("transição de status inválida")
	ErrItemJaEntregue       = errors.New("item já entregue não pode ser cancelado")
	ErrSemItensAtivos       = errors.New("a comanda não possui itens ativos")
)

type ComandaService interface {
	AdicionarItem(ctx context.Context, op Operador, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error)
	EnviarParaCozinha(ctx context.Context, comandaID uuid.UUID, req dto.EnviarCozinhaRequest) (*dto.ComandaResponse, error)
	AvancarItem(ctx context.Context, itemID uuid.UUID) (*dto.ComandaItemResponse, error)
	CancelarItem(ctx context.Context, op Operador, itemID uuid.UUID, motivo string) (*dto.ComandaResponse, error)
	MarcarProntaParaFechar(ctx context.Context, comandaID uuid.UUID) (*dto.ComandaResponse, error)
	CancelarComanda(ctx context.Context, op Operador, comandaID uuid.UUID, motivo string) error
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error)
	Listar(ctx context.Context, filter dto.ComandaFilter) (*dto.ComandaListResponse, error)
	CozinhaBoard(ctx context.Context) (*dto.CozinhaBoardResponse, error)
}

type comandaService struct {
	repo        repository.ComandaRepository
	mesaRepo    repository.MesaRepository
	produtoRepo repository.ProdutoRepository
	rt          realtime.Publisher
	dispatcher  *worker.Dispatcher
}

func NewComandaService(
	repo repository.ComandaRepository,
	mesaRepo repository.MesaRepository,
	produtoRepo repository.ProdutoRepository,
	rt realtime.Publisher,
	dispatcher *worker.Dispatcher,
) ComandaService {
	return &comandaService{
		repo:        repo,
		mesaRepo:    mesaRepo,
		produtoRepo: produtoRepo,
		rt:          rt,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── AdicionarItem ─────────────────────────────────────────────────────────────
// Adds one line to a comanda. When the request carries only a mesa_id and the
// mesa has no open comanda, one is created inside the same transaction:
// nextval numero, comanda insert, mesa → ocupada, item insert, total recalc.

func (s *comandaService) AdicionarItem(ctx context.Context, op Operador, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, fmt.Errorf("produto_id inválido: %w", err)
	}
	produto, err := s.produtoRepo.BuscarPorID(ctx, produtoID)
	if err != nil {
		return nil, fmt.Errorf("produto %s não encontrado", req.ProdutoID)
	}
	if !produto.Ativo {
		return nil, fmt.Errorf("produto %s está inativo", produto.Nome)
	}

	// Resolve the target comanda (existing or to-be-created)
	var comanda *model.Comanda
	var mesa *model.Mesa

	switch {
	case req.ComandaID != nil && *req.ComandaID != "":
		cid, err := uuid.Parse(*req.ComandaID)
		if err != nil {
			return nil, fmt.Errorf("comanda_id inválido: %w", err)
		}
		comanda, err = s.repo.BuscarPorID(ctx, cid)
		if err != nil {
			return nil, ErrComandaNaoEncontrada
		}

	case req.MesaID != nil && *req.MesaID != "":
		mid, err := uuid.Parse(*req.MesaID)
		if err != nil {
			return nil, fmt.Errorf("mesa_id inválido: %w", err)
		}
		mesa, err = s.mesaRepo.BuscarPorID(ctx, mid)
		if err != nil {
			return nil, errors.New("mesa não encontrada")
		}
		if !mesa.Ativo || mesa.Status == model.MesaManutencao || mesa.Status == model.MesaAguardandoPagamento {
			return nil, ErrMesaIndisponivel
		}
		if existente, err := s.repo.BuscarAbertaPorMesa(ctx, mid); err == nil {
			comanda = existente
		}

	default:
		return nil, errors.New("informe mesa_id ou comanda_id")
	}

	if comanda != nil && comanda.Status != model.ComandaAberta && comanda.Status != model.ComandaEmPreparo {
		return nil, ErrComandaFechada
	}

	var comandaID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if comanda == nil {
			numero, err := s.repo.NextNumero(ctx, tx)
			if err != nil {
				return err
			}
			nova := model.Comanda{
				Numero:        numero,
				PerfilID:      op.PerfilID,
				FuncionarioID: op.FuncionarioID,
				Status:        model.ComandaAberta,
				ValorTotal:    decimal.Zero,
				AbertaEm:      time.Now(),
			}
			if mesa != nil {
				nova.MesaID = &mesa.ID
			}
			if err := s.repo.CriarTx(tx, &nova); err != nil {
				return err
			}
			comanda = &nova

			if mesa != nil && mesa.Status != model.MesaOcupada {
				if err := s.mesaRepo.AtualizarStatusTx(tx, mesa.ID, model.MesaOcupada); err != nil {
					return err
				}
			}
		}
		comandaID = comanda.ID

		item := model.ComandaItem{
			ComandaID:     comanda.ID,
			ProdutoID:     produto.ID,
			Quantidade:    req.Quantidade,
			PrecoUnitario: produto.Preco, // snapshot at order time
			Status:        model.ItemPendente,
			Observacao:    req.Observacao,
		}
		if err := s.repo.CriarItemTx(tx, &item); err != nil {
			return err
		}

		return s.repo.RecalcularTotalTx(tx, comanda.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("comandas", realtime.EventoUpdate, comandaID)
	if mesa != nil {
		s.rt.Publicar("mesas", realtime.EventoUpdate, mesa.ID)
	}
	s.auditar(ctx, op, "comanda.item_adicionado",
		fmt.Sprintf("produto=%s qtd=%d comanda=%s", produto.Nome, req.Quantidade, comandaID))

	return s.Buscar(ctx, comandaID)
}

// ── EnviarParaCozinha ─────────────────────────────────────────────────────────
// Marks the given pendente items as aguardando and flags them for the kitchen
// board. The comanda moves aberta → em_preparo on the first send.

func (s *comandaService) EnviarParaCozinha(ctx context.Context, comandaID uuid.UUID, req dto.EnviarCozinhaRequest) (*dto.ComandaResponse, error) {
	comanda, err := s.repo.BuscarPorID(ctx, comandaID)
	if err != nil {
		return nil, ErrComandaNaoEncontrada
	}
	if comanda.Status != model.ComandaAberta && comanda.Status != model.ComandaEmPreparo {
		return nil, ErrComandaFechada
	}

	ids := make(map[uuid.UUID]bool, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("item_id inválido: %w", err)
		}
		ids[id] = true
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		enviados := 0
		for i := range comanda.Itens {
			item := &comanda.Itens[i]
			if !ids[item.ID] {
				continue
			}
			if item.Status != model.ItemPendente {
				return fmt.Errorf("item %s: %w (status atual %s)", item.ID, ErrTransicaoInvalida, item.Status)
			}
			item.Status = model.ItemAguardando
			item.EnviadoCozinha = true
			if err := s.repo.AtualizarItemTx(tx, item); err != nil {
				return err
			}
			enviados++
		}
		if enviados == 0 {
			return errors.New("nenhum item pendente correspondente")
		}

		if comanda.Status == model.ComandaAberta {
			if err := s.repo.AtualizarStatusTx(tx, comanda.ID, model.ComandaEmPreparo); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("comandas", realtime.EventoUpdate, comanda.ID)
	s.rt.Publicar("comanda_itens", realtime.EventoUpdate, comanda.ID)

	return s.Buscar(ctx, comanda.ID)
}

// ── AvancarItem ───────────────────────────────────────────────────────────────
// Moves one item a single step forward (aguardando → preparando → pronto →
// entregue). Skipping steps or moving backwards is rejected.

func (s *comandaService) AvancarItem(ctx context.Context, itemID uuid.UUID) (*dto.ComandaItemResponse, error) {
	item, err := s.repo.BuscarItemPorID(ctx, itemID)
	if err != nil {
		return nil, errors.New("item não encontrado")
	}
	if err := s.comandaMutavel(ctx, item.ComandaID); err != nil {
		return nil, err
	}

	proximo, ok := itemTransicao[item.Status]
	if !ok {
		return nil, fmt.Errorf("%w: %s não possui sucessor", ErrTransicaoInvalida, item.Status)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item.Status = proximo
		return s.repo.AtualizarItemTx(tx, item)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("comanda_itens", realtime.EventoUpdate, item.ComandaID)
	s.rt.Publicar("comandas", realtime.EventoUpdate, item.ComandaID)

	resp := itemToResponse(item)
	return &resp, nil
}

// ── CancelarItem ──────────────────────────────────────────────────────────────
// Cancels one item with a mandatory motivo. Delivered items and items of a
// comanda already fechada/cancelada are immutable. The comanda total is
// recomputed inside the same transaction.

func (s *comandaService) CancelarItem(ctx context.Context, op Operador, itemID uuid.UUID, motivo string) (*dto.ComandaResponse, error) {
	item, err := s.repo.BuscarItemPorID(ctx, itemID)
	if err != nil {
		return nil, errors.New("item não encontrado")
	}
	if err := s.comandaMutavel(ctx, item.ComandaID); err != nil {
		return nil, err
	}
	if item.Status == model.ItemEntregue {
		return nil, ErrItemJaEntregue
	}
	if item.Status == model.ItemCancelado {
		return nil, errors.New("item já está cancelado")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item.Status = model.ItemCancelado
		item.MotivoCancelamento = &motivo
		item.CanceladoPor = op.id()
		if err := s.repo.AtualizarItemTx(tx, item); err != nil {
			return err
		}
		return s.repo.RecalcularTotalTx(tx, item.ComandaID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("comandas", realtime.EventoUpdate, item.ComandaID)
	s.rt.Publicar("comanda_itens", realtime.EventoUpdate, item.ComandaID)
	s.auditar(ctx, op, "comanda.item_cancelado",
		fmt.Sprintf("item=%s motivo=%s", item.ID, motivo))

	return s.Buscar(ctx, item.ComandaID)
}

// ── MarcarProntaParaFechar ────────────────────────────────────────────────────
// Staff signal that the table asked for the bill. The mesa moves to
// aguardando_pagamento so no further lançamentos land on it.

func (s *comandaService) MarcarProntaParaFechar(ctx context.Context, comandaID uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.repo.BuscarPorID(ctx, comandaID)
	if err != nil {
		return nil, ErrComandaNaoEncontrada
	}
	if comanda.Status != model.ComandaAberta && comanda.Status != model.ComandaEmPreparo {
		return nil, ErrComandaFechada
	}
	if !temItensAtivos(comanda) {
		return nil, ErrSemItensAtivos
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AtualizarStatusTx(tx, comanda.ID, model.ComandaProntaParaFechar); err != nil {
			return err
		}
		if comanda.MesaID != nil {
			return s.mesaRepo.AtualizarStatusTx(tx, *comanda.MesaID, model.MesaAguardandoPagamento)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.rt.Publicar("comandas", realtime.EventoUpdate, comanda.ID)
	if comanda.MesaID != nil {
		s.rt.Publicar("mesas", realtime.EventoUpdate, *comanda.MesaID)
	}

	return s.Buscar(ctx, comanda.ID)
}

// ── CancelarComanda ───────────────────────────────────────────────────────────
// Cancels the whole comanda: every non-entregue item is cancelled with the
// given motivo and the mesa is freed. Closed comandas are immutable.

func (s *comandaService) CancelarComanda(ctx context.Context, op Operador, comandaID uuid.UUID, motivo string) error {
	comanda, err := s.repo.BuscarPorID(ctx, comandaID)
	if err != nil {
		return ErrComandaNaoEncontrada
	}
	if comanda.Status == model.ComandaFechada || comanda.Status == model.ComandaCancelada {
		return ErrComandaFechada
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range comanda.Itens {
			item := &comanda.Itens[i]
			if item.Status == model.ItemEntregue || item.Status == model.ItemCancelado {
				continue
			}
			item.Status = model.ItemCancelado
			item.MotivoCancelamento = &motivo
			item.CanceladoPor = op.id()
			if err := s.repo.AtualizarItemTx(tx, item); err != nil {
				return err
			}
		}
		if err := s.repo.RecalcularTotalTx(tx, comanda.ID); err != nil {
			return err
		}
		if err := s.repo.AtualizarStatusTx(tx, comanda.ID, model.ComandaCancelada); err != nil {
			return err
		}
		if comanda.MesaID != nil {
			return s.mesaRepo.AtualizarStatusTx(tx, *comanda.MesaID, model.MesaLivre)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.rt.Publicar("comandas", realtime.EventoUpdate, comanda.ID)
	if comanda.MesaID != nil {
		s.rt.Publicar("mesas", realtime.EventoUpdate, *comanda.MesaID)
	}
	s.auditar(ctx, op, "comanda.cancelada",
		fmt.Sprintf("comanda=%s motivo=%s", comanda.ID, motivo))

	return nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *comandaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, ErrComandaNaoEncontrada
	}
	resp := comandaToResponse(comanda)
	return &resp, nil
}

func (s *comandaService) Listar(ctx context.Context, filter dto.ComandaFilter) (*dto.ComandaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	comandas, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		data = append(data, comandaToResponse(&comandas[i]))
	}
	return &dto.ComandaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CozinhaBoard groups every in-flight kitchen item by mesa, then by categoria.
// Stand-alone comandas (balcão) appear under mesa_numero 0.
func (s *comandaService) CozinhaBoard(ctx context.Context) (*dto.CozinhaBoardResponse, error) {
	itens, err := s.repo.ListarItensCozinha(ctx)
	if err != nil {
		return nil, err
	}

	type chave struct {
		mesa      int
		categoria string
	}
	porGrupo := make(map[chave][]dto.CozinhaItem)

	for i := range itens {
		item := &itens[i]

		mesaNumero := 0
		comandaNumero := 0
		if item.Comanda != nil {
			comandaNumero = item.Comanda.Numero
			if item.Comanda.Mesa != nil {
				mesaNumero = item.Comanda.Mesa.Numero
			}
		}
		categoria := ""
		produto := ""
		tempoPreparo := 0
		if item.Produto != nil {
			produto = item.Produto.Nome
			tempoPreparo = item.Produto.TempoPreparoMin
			if item.Produto.Categoria != nil {
				categoria = item.Produto.Categoria.Nome
			}
		}

		k := chave{mesa: mesaNumero, categoria: categoria}
		porGrupo[k] = append(porGrupo[k], dto.CozinhaItem{
			ItemID:          item.ID.String(),
			ComandaNumero:   comandaNumero,
			Produto:         produto,
			Quantidade:      item.Quantidade,
			Status:          item.Status,
			TempoPreparoMin: tempoPreparo,
			Observacao:      item.Observacao,
			EnviadoEm:       item.UpdatedAt.Format(time.RFC3339),
		})
	}

	porMesa := make(map[int][]dto.CozinhaCategoria)
	for k, grupo := range porGrupo {
		porMesa[k.mesa] = append(porMesa[k.mesa], dto.CozinhaCategoria{
			Categoria: k.categoria,
			Itens:     grupo,
		})
	}

	mesas := make([]dto.CozinhaMesa, 0, len(porMesa))
	for numero, categorias := range porMesa {
		sort.Slice(categorias, func(i, j int) bool {
			return categorias[i].Categoria < categorias[j].Categoria
		})
		mesas = append(mesas, dto.CozinhaMesa{MesaNumero: numero, Categorias: categorias})
	}
	sort.Slice(mesas, func(i, j int) bool { return mesas[i].MesaNumero < mesas[j].MesaNumero })

	return &dto.CozinhaBoardResponse{Mesas: mesas}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (op Operador) id() *uuid.UUID {
	if op.PerfilID != nil {
		return op.PerfilID
	}
	return op.FuncionarioID
}

func (s *comandaService) auditar(ctx context.Context, op Operador, acao, detalhes string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{
		Acao:          acao,
		Recurso:       "comandas",
		PerfilID:      op.PerfilID,
		FuncionarioID: op.FuncionarioID,
		Detalhes:      &detalhes,
	})
}

// comandaMutavel rejects item mutations once a comanda is fechada or
// cancelada — the total and the status board are frozen at that point.
func (s *comandaService) comandaMutavel(ctx context.Context, comandaID uuid.UUID) error {
	comanda, err := s.repo.BuscarPorID(ctx, comandaID)
	if err != nil {
		return ErrComandaNaoEncontrada
	}
	if comanda.Status == model.ComandaFechada || comanda.Status == model.ComandaCancelada {
		return ErrComandaFechada
	}
	return nil
}

func temItensAtivos(c *model.Comanda) bool {
	for i := range c.Itens {
		if c.Itens[i].Status != model.ItemCancelado {
			return true
		}
	}
	return false
}

func itemToResponse(item *model.ComandaItem) dto.ComandaItemResponse {
	produto := ""
	categoria := ""
	if item.Produto != nil {
		produto = item.Produto.Nome
		if item.Produto.Categoria != nil {
			categoria = item.Produto.Categoria.Nome
		}
	}
	return dto.ComandaItemResponse{
		ID:             item.ID.String(),
		Produto:        produto,
		Categoria:      categoria,
		Quantidade:     item.Quantidade,
		PrecoUnitario:  item.PrecoUnitario,
		Subtotal:       item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))),
		Status:         item.Status,
		EnviadoCozinha: item.EnviadoCozinha,
		Observacao:     item.Observacao,
	}
}

func comandaToResponse(c *model.Comanda) dto.ComandaResponse {
	itens := make([]dto.ComandaItemResponse, 0, len(c.Itens))
	for i := range c.Itens {
		itens = append(itens, itemToResponse(&c.Itens[i]))
	}
	resp := dto.ComandaResponse{
		ID:         c.ID.String(),
		Numero:     c.Numero,
		Status:     c.Status,
		ValorTotal: c.ValorTotal,
		Itens:      itens,
		AbertaEm:   c.AbertaEm.Format(time.RFC3339),
	}
	if c.Mesa != nil {
		numero := c.Mesa.Numero
		resp.MesaNumero = &numero
	}
	if c.FechadaEm != nil {
		s := c.FechadaEm.Format(time.RFC3339)
		resp.FechadaEm = &s
	}
	return resp
}
