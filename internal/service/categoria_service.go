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

type CategoriaService interface {
	Criar(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo        repository.CategoriaRepository
	produtoRepo repository.ProdutoRepository
	rt          realtime.Publisher
}

func NewCategoriaService(repo repository.CategoriaRepository, produtoRepo repository.ProdutoRepository, rt realtime.Publisher) CategoriaService {
	return &categoriaService{repo: repo, produtoRepo: produtoRepo, rt: rt}
}

func (s *categoriaService) Criar(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	if existente, err := s.repo.BuscarPorNome(ctx, req.Nome); err == nil && existente != nil {
		return nil, fmt.Errorf("categoria %q já existe", req.Nome)
	}
	categoria := model.Categoria{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := s.repo.Criar(ctx, &categoria); err != nil {
		return nil, err
	}
	s.rt.Publicar("categorias", realtime.EventoInsert, categoria.ID)
	return categoriaToResponse(&categoria), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, *categoriaToResponse(&categorias[i]))
	}
	return out, nil
}

func (s *categoriaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("categoria não encontrada")
	}
	if req.Nome != "" {
		categoria.Nome = req.Nome
	}
	if req.Descricao != nil {
		categoria.Descricao = req.Descricao
	}
	if err := s.repo.Atualizar(ctx, categoria); err != nil {
		return nil, err
	}
	s.rt.Publicar("categorias", realtime.EventoUpdate, categoria.ID)
	return categoriaToResponse(categoria), nil
}

// Desativar refuses while active produtos still point at the categoria.
func (s *categoriaService) Desativar(ctx context.Context, id uuid.UUID) error {
	produtos, err := s.produtoRepo.ListarPorCategoria(ctx, id)
	if err != nil {
		return err
	}
	for i := range produtos {
		if produtos[i].Ativo {
			return errors.New("categoria possui produtos ativos")
		}
	}
	if err := s.repo.Desativar(ctx, id); err != nil {
		return err
	}
	s.rt.Publicar("categorias", realtime.EventoUpdate, id)
	return nil
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Descricao: c.Descricao,
		Ativo:     c.Ativo,
	}
}
