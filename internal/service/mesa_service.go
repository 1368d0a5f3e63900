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

var ErrMesaOcupada = errors.New("a mesa possui comanda aberta")

type MesaService interface {
	Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error)
	Listar(ctx context.Context, incluirInativas bool) ([]dto.MesaResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMesaRequest) (*dto.MesaResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type mesaService struct {
	repo        repository.MesaRepository
	comandaRepo repository.ComandaRepository
	rt          realtime.Publisher
}

func NewMesaService(repo repository.MesaRepository, comandaRepo repository.ComandaRepository, rt realtime.Publisher) MesaService {
	return &mesaService{repo: repo, comandaRepo: comandaRepo, rt: rt}
}

func (s *mesaService) Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error) {
	if existente, err := s.repo.BuscarPorNumero(ctx, req.Numero); err == nil && existente != nil {
		return nil, fmt.Errorf("já existe mesa com número %d", req.Numero)
	}

	mesa := model.Mesa{
		Numero:     req.Numero,
		Capacidade: req.Capacidade,
		Status:     model.MesaLivre,
		Ativo:      true,
	}
	if err := s.repo.Criar(ctx, &mesa); err != nil {
		return nil, err
	}

	s.rt.Publicar("mesas", realtime.EventoInsert, mesa.ID)
	return s.toResponse(ctx, &mesa), nil
}

func (s *mesaService) Listar(ctx context.Context, incluirInativas bool) ([]dto.MesaResponse, error) {
	mesas, err := s.repo.Listar(ctx, incluirInativas)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		out = append(out, *s.toResponse(ctx, &mesas[i]))
	}
	return out, nil
}

func (s *mesaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error) {
	mesa, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("mesa não encontrada")
	}
	return s.toResponse(ctx, mesa), nil
}

// Atualizar changes capacidade and manually-settable statuses (livre,
// reservada, manutencao). Ocupada and aguardando_pagamento are owned by the
// comanda lifecycle and cannot be set here.
func (s *mesaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMesaRequest) (*dto.MesaResponse, error) {
	mesa, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, errors.New("mesa não encontrada")
	}

	if req.Status != "" && req.Status != mesa.Status {
		if mesa.Status == model.MesaOcupada || mesa.Status == model.MesaAguardandoPagamento {
			return nil, ErrMesaOcupada
		}
		mesa.Status = req.Status
	}
	if req.Capacidade > 0 {
		mesa.Capacidade = req.Capacidade
	}

	if err := s.repo.Atualizar(ctx, mesa); err != nil {
		return nil, err
	}

	s.rt.Publicar("mesas", realtime.EventoUpdate, mesa.ID)
	return s.toResponse(ctx, mesa), nil
}

func (s *mesaService) Desativar(ctx context.Context, id uuid.UUID) error {
	mesa, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return errors.New("mesa não encontrada")
	}
	if mesa.Status == model.MesaOcupada || mesa.Status == model.MesaAguardandoPagamento {
		return ErrMesaOcupada
	}
	if err := s.repo.Desativar(ctx, id); err != nil {
		return err
	}
	s.rt.Publicar("mesas", realtime.EventoUpdate, id)
	return nil
}

func (s *mesaService) Reativar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reativar(ctx, id); err != nil {
		return err
	}
	s.rt.Publicar("mesas", realtime.EventoUpdate, id)
	return nil
}

func (s *mesaService) toResponse(ctx context.Context, m *model.Mesa) *dto.MesaResponse {
	resp := &dto.MesaResponse{
		ID:         m.ID.String(),
		Numero:     m.Numero,
		Capacidade: m.Capacidade,
		Status:     m.Status,
		Ativo:      m.Ativo,
	}
	if m.Status == model.MesaOcupada || m.Status == model.MesaAguardandoPagamento {
		if comanda, err := s.comandaRepo.BuscarAbertaPorMesa(ctx, m.ID); err == nil {
			id := comanda.ID.String()
			resp.ComandaAberta = &id
		}
	}
	return resp
}
