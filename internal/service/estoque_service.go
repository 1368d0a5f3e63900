package service

import (
	"context"
	"errors"
	"fmt"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/realtime"
	"chefcomanda/internal/repository"

	"github.com/google/uuid"
)

var ErrQuantidadeInvalida = errors.New("quantidade deve ser positiva")

type EstoqueService interface {
	CriarInsumo(ctx context.Context, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error)
	ListarInsumos(ctx context.Context) ([]dto.InsumoResponse, error)
	RegistrarEntrada(ctx context.Context, req dto.RegistrarEntradaRequest) (*dto.InsumoResponse, error)
	RegistrarSaida(ctx context.Context, req dto.RegistrarSaidaRequest) (*dto.InsumoResponse, error)
	Alertas(ctx context.Context) ([]dto.AlertaEstoqueResponse, error)
	VincularInsumo(ctx context.Context, req dto.VincularInsumoRequest) error
	RemoverVinculo(ctx context.Context, vinculoID uuid.UUID) error
}

type estoqueService struct {
	repo        repository.InsumoRepository
	produtoRepo repository.ProdutoRepository
	rt          realtime.Publisher
}

func NewEstoqueService(repo repository.InsumoRepository, produtoRepo repository.ProdutoRepository, rt realtime.Publisher) EstoqueService {
	return &estoqueService{repo: repo, produtoRepo: produtoRepo, rt: rt}
}

func (s *estoqueService) CriarInsumo(ctx context.Context, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo := model.Insumo{
		Nome:          req.Nome,
		UnidadeMedida: req.UnidadeMedida,
		EstoqueMinimo: req.EstoqueMinimo,
		CustoUnitario: req.CustoUnitario,
		Ativo:         true,
	}
	if err := s.repo.Criar(ctx, &insumo); err != nil {
		return nil, err
	}
	s.rt.Publicar("insumos", realtime.EventoInsert, insumo.ID)
	return insumoToResponse(&insumo), nil
}

func (s *estoqueService) ListarInsumos(ctx context.Context) ([]dto.InsumoResponse, error) {
	insumos, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		out = append(out, *insumoToResponse(&insumos[i]))
	}
	return out, nil
}

// RegistrarEntrada records received stock and bumps estoque_atual. The cost
// on the entrada updates the insumo's custo_unitario (last purchase price).
func (s *estoqueService) RegistrarEntrada(ctx context.Context, req dto.RegistrarEntradaRequest) (*dto.InsumoResponse, error) {
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, fmt.Errorf("insumo_id inválido: %w", err)
	}
	if !req.Quantidade.IsPositive() {
		return nil, ErrQuantidadeInvalida
	}
	insumo, err := s.repo.BuscarPorID(ctx, insumoID)
	if err != nil {
		return nil, errors.New("insumo não encontrado")
	}

	entrada := model.EntradaEstoque{
		InsumoID:      insumoID,
		Quantidade:    req.Quantidade,
		CustoUnitario: req.CustoUnitario,
		Motivo:        req.Motivo,
		Observacao:    req.Observacao,
	}
	if err := s.repo.CriarEntrada(ctx, &entrada); err != nil {
		return nil, err
	}
	if err := s.repo.AjustarEstoque(ctx, insumoID, req.Quantidade); err != nil {
		return nil, err
	}
	if req.CustoUnitario.IsPositive() && !req.CustoUnitario.Equal(insumo.CustoUnitario) {
		insumo.CustoUnitario = req.CustoUnitario
		_ = s.repo.Atualizar(ctx, insumo)
	}

	s.rt.Publicar("insumos", realtime.EventoUpdate, insumoID)
	return s.buscarInsumo(ctx, insumoID)
}

// RegistrarSaida records a manual consumption (perda, ajuste). Vendas create
// their saídas automatically inside the sale transaction.
func (s *estoqueService) RegistrarSaida(ctx context.Context, req dto.RegistrarSaidaRequest) (*dto.InsumoResponse, error) {
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, fmt.Errorf("insumo_id inválido: %w", err)
	}
	if !req.Quantidade.IsPositive() {
		return nil, ErrQuantidadeInvalida
	}
	if _, err := s.repo.BuscarPorID(ctx, insumoID); err != nil {
		return nil, errors.New("insumo não encontrado")
	}

	saida := model.SaidaEstoque{
		InsumoID:   insumoID,
		Quantidade: req.Quantidade,
		Tipo:       req.Tipo,
		Motivo:     req.Motivo,
	}
	if err := s.repo.CriarSaida(ctx, &saida); err != nil {
		return nil, err
	}
	if err := s.repo.AjustarEstoque(ctx, insumoID, req.Quantidade.Neg()); err != nil {
		return nil, err
	}

	s.rt.Publicar("insumos", realtime.EventoUpdate, insumoID)
	return s.buscarInsumo(ctx, insumoID)
}

// Alertas lists insumos at or below their minimum level.
func (s *estoqueService) Alertas(ctx context.Context) ([]dto.AlertaEstoqueResponse, error) {
	insumos, err := s.repo.ListarAbaixoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaEstoqueResponse, 0, len(insumos))
	for i := range insumos {
		ins := &insumos[i]
		out = append(out, dto.AlertaEstoqueResponse{
			InsumoID:      ins.ID.String(),
			Nome:          ins.Nome,
			EstoqueAtual:  ins.EstoqueAtual,
			EstoqueMinimo: ins.EstoqueMinimo,
			UnidadeMedida: ins.UnidadeMedida,
		})
	}
	return out, nil
}

func (s *estoqueService) VincularInsumo(ctx context.Context, req dto.VincularInsumoRequest) error {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return fmt.Errorf("produto_id inválido: %w", err)
	}
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return fmt.Errorf("insumo_id inválido: %w", err)
	}
	if !req.Quantidade.IsPositive() {
		return ErrQuantidadeInvalida
	}
	if _, err := s.produtoRepo.BuscarPorID(ctx, produtoID); err != nil {
		return errors.New("produto não encontrado")
	}
	if _, err := s.repo.BuscarPorID(ctx, insumoID); err != nil {
		return errors.New("insumo não encontrado")
	}

	return s.repo.CriarVinculo(ctx, &model.ProdutoInsumo{
		ProdutoID:  produtoID,
		InsumoID:   insumoID,
		Quantidade: req.Quantidade,
	})
}

func (s *estoqueService) RemoverVinculo(ctx context.Context, vinculoID uuid.UUID) error {
	return s.repo.RemoverVinculo(ctx, vinculoID)
}

func (s *estoqueService) buscarInsumo(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return insumoToResponse(insumo), nil
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:            i.ID.String(),
		Nome:          i.Nome,
		UnidadeMedida: i.UnidadeMedida,
		EstoqueAtual:  i.EstoqueAtual,
		EstoqueMinimo: i.EstoqueMinimo,
		CustoUnitario: i.CustoUnitario,
		Ativo:         i.Ativo,
	}
}
