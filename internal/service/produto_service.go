package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/realtime"
	"chefcomanda/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cardapioCacheKey = "cache:cardapio"
	cardapioCacheTTL = 10 * time.Minute
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	// Cardapio lists active products grouped nowhere — flat, cached in Redis,
	// served to the waiter tablet on every mesa open.
	Cardapio(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo          repository.ProdutoRepository
	categoriaRepo repository.CategoriaRepository
	rdb           *redis.Client
	rt            realtime.Publisher
}

func NewProdutoService(
	repo repository.ProdutoRepository,
	categoriaRepo repository.CategoriaRepository,
	rdb *redis.Client,
	rt realtime.Publisher,
) ProdutoService {
	return &produtoService{repo: repo, categoriaRepo: categoriaRepo, rdb: rdb, rt: rt}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id inválido: %w", err)
	}
	categoria, err := s.categoriaRepo.BuscarPorID(ctx, categoriaID)
	if err != nil {
		return nil, errors.New("categoria não encontrada")
	}
	if req.Preco.IsNegative() || req.Preco.IsZero() {
		return nil, errors.New("preço deve ser positivo")
	}

	produto := model.Produto{
		Nome:        req.Nome,
		Descricao:   req.Descricao,
		CategoriaID: categoriaID,
		Preco:       req.Preco,
		Ativo:       true,
	}
	if req.TempoPreparoMin > 0 {
		produto.TempoPreparoMin = req.TempoPreparoMin
	} else {
		produto.TempoPreparoMin = 15
	}
	if err := s.repo.Criar(ctx, &produto); err != nil {
		return nil, err
	}
	produto.Categoria = categoria

	s.invalidateCardapio(ctx)
	s.rt.Publicar("produtos", realtime.EventoInsert, produto.ID)
	return produtoToResponse(&produto), nil
}

func (s *produtoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	return produtoToResponse(produto), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produtos, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Cardapio is the hot read path — read-through Redis cache with TTL,
// invalidated on every catalog write.
func (s *produtoService) Cardapio(ctx context.Context) ([]dto.ProdutoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cardapioCacheKey).Bytes(); err == nil {
			var resp []dto.ProdutoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	produtos, _, err := s.repo.Listar(ctx, dto.ProdutoFilter{Page: 1, Limit: 500})
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		resp = append(resp, *produtoToResponse(&produtos[i]))
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cardapioCacheKey, b, cardapioCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}

	if req.Nome != "" {
		produto.Nome = req.Nome
	}
	if req.Descricao != nil {
		produto.Descricao = req.Descricao
	}
	if req.CategoriaID != "" {
		categoriaID, err := uuid.Parse(req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		if _, err := s.categoriaRepo.BuscarPorID(ctx, categoriaID); err != nil {
			return nil, errors.New("categoria não encontrada")
		}
		produto.CategoriaID = categoriaID
		produto.Categoria = nil
	}
	if req.Preco != nil {
		if req.Preco.IsNegative() || req.Preco.IsZero() {
			return nil, errors.New("preço deve ser positivo")
		}
		// Price changes never touch items already lançados (snapshot rule)
		produto.Preco = *req.Preco
	}
	if req.TempoPreparoMin > 0 {
		produto.TempoPreparoMin = req.TempoPreparoMin
	}

	if err := s.repo.Atualizar(ctx, produto); err != nil {
		return nil, err
	}

	s.invalidateCardapio(ctx)
	s.rt.Publicar("produtos", realtime.EventoUpdate, produto.ID)
	return s.Buscar(ctx, produto.ID)
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Desativar(ctx, id); err != nil {
		return err
	}
	s.invalidateCardapio(ctx)
	s.rt.Publicar("produtos", realtime.EventoUpdate, id)
	return nil
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reativar(ctx, id); err != nil {
		return err
	}
	s.invalidateCardapio(ctx)
	s.rt.Publicar("produtos", realtime.EventoUpdate, id)
	return nil
}

func (s *produtoService) invalidateCardapio(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, cardapioCacheKey).Err()
	}
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	categoria := ""
	if p.Categoria != nil {
		categoria = p.Categoria.Nome
	}
	return &dto.ProdutoResponse{
		ID:              p.ID.String(),
		Nome:            p.Nome,
		Descricao:       p.Descricao,
		Categoria:       categoria,
		CategoriaID:     p.CategoriaID.String(),
		Preco:           p.Preco,
		TempoPreparoMin: p.TempoPreparoMin,
		Ativo:           p.Ativo,
	}
}
