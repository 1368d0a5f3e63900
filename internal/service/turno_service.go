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
)

var (
	ErrTurnoJaAberto   = errors.New("já existe um turno aberto")
	ErrSemTurnoAtivo   = errors.New("não há turno aberto")
	ErrTurnoJaFechado  = errors.New("turno já está fechado")
	ErrComandasAbertas = errors.New("existem comandas abertas; feche ou cancele antes de encerrar o turno")
)

type TurnoService interface {
	Abrir(ctx context.Context, op Operador, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error)
	Fechar(ctx context.Context, op Operador, req dto.FecharTurnoRequest) (*dto.ResumoTurnoResponse, error)
	Atual(ctx context.Context) (*dto.TurnoResponse, error)
	Resumo(ctx context.Context, turnoID uuid.UUID) (*dto.ResumoTurnoResponse, error)
	Historico(ctx context.Context, page, limit int) ([]dto.TurnoResponse, int64, error)
}

type turnoService struct {
	repo            repository.TurnoRepository
	vendaRepo       repository.VendaRepository
	comandaRepo     repository.ComandaRepository
	perfilRepo      repository.PerfilRepository
	funcionarioRepo repository.FuncionarioRepository
	rt              realtime.Publisher
	dispatcher      *worker.Dispatcher
	emailResumo     string // destination for the closing summary; empty disables it
}

func NewTurnoService(
	repo repository.TurnoRepository,
	vendaRepo repository.VendaRepository,
	comandaRepo repository.ComandaRepository,
	perfilRepo repository.PerfilRepository,
	funcionarioRepo repository.FuncionarioRepository,
	rt realtime.Publisher,
	dispatcher *worker.Dispatcher,
	emailResumo string,
) TurnoService {
	return &turnoService{
		repo:            repo,
		vendaRepo:       vendaRepo,
		comandaRepo:     comandaRepo,
		perfilRepo:      perfilRepo,
		funcionarioRepo: funcionarioRepo,
		rt:              rt,
		dispatcher:      dispatcher,
		emailResumo:     emailResumo,
	}
}

// Abrir opens a new turno. At most one turno is active at a time — opening
// while another is active is an error, never an implicit close.
func (s *turnoService) Abrir(ctx context.Context, op Operador, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error) {
	ativos, err := s.repo.ContarAtivos(ctx)
	if err != nil {
		return nil, err
	}
	if ativos > 0 {
		return nil, ErrTurnoJaAberto
	}
	if req.ValorAbertura.IsNegative() {
		return nil, errors.New("valor_abertura não pode ser negativo")
	}

	turno := model.Turno{
		PerfilID:      op.PerfilID,
		FuncionarioID: op.FuncionarioID,
		ValorAbertura: req.ValorAbertura,
		Ativo:         true,
		AbertoEm:      time.Now(),
	}
	if err := s.repo.Criar(ctx, &turno); err != nil {
		return nil, err
	}

	s.rt.Publicar("turnos", realtime.EventoInsert, turno.ID)
	resp := s.toResponse(ctx, &turno)
	return &resp, nil
}

// Fechar closes the active turno, records the counted cash and returns the
// closing summary. Open comandas block the close.
func (s *turnoService) Fechar(ctx context.Context, op Operador, req dto.FecharTurnoRequest) (*dto.ResumoTurnoResponse, error) {
	turno, err := s.repo.BuscarAtivo(ctx)
	if err != nil {
		return nil, ErrSemTurnoAtivo
	}

	abertas, err := s.comandaRepo.ContarAbertas(ctx)
	if err != nil {
		return nil, err
	}
	if abertas > 0 {
		return nil, ErrComandasAbertas
	}

	agora := time.Now()
	fechamento := req.ValorFechamento
	turno.Ativo = false
	turno.ValorFechamento = &fechamento
	turno.Observacoes = req.Observacoes
	turno.FechadoEm = &agora
	if err := s.repo.Atualizar(ctx, turno); err != nil {
		return nil, err
	}

	s.rt.Publicar("turnos", realtime.EventoUpdate, turno.ID)

	resumo, err := s.Resumo(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil && s.emailResumo != "" {
		body := fmt.Sprintf(
			"Turno encerrado em %s\nOperador: %s\nVendas: %d (R$ %s)\nDinheiro esperado: R$ %s\nDinheiro contado: R$ %s",
			agora.Format("02/01/2006 15:04"),
			resumo.Turno.Operador,
			resumo.QtdVendas,
			resumo.TotalVendas.StringFixed(2),
			resumo.DinheiroEsperado.StringFixed(2),
			fechamento.StringFixed(2),
		)
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: s.emailResumo,
			Subject: fmt.Sprintf("Fechamento de turno — %s", agora.Format("02/01/2006")),
			Body:    body,
		})
	}
	return resumo, nil
}

func (s *turnoService) Atual(ctx context.Context) (*dto.TurnoResponse, error) {
	turno, err := s.repo.BuscarAtivo(ctx)
	if err != nil {
		return nil, ErrSemTurnoAtivo
	}
	resp := s.toResponse(ctx, turno)
	return &resp, nil
}

// Resumo aggregates the turno's vendas per payment method. DinheiroEsperado
// is valor_abertura plus cash sales — what the drawer should hold.
func (s *turnoService) Resumo(ctx context.Context, turnoID uuid.UUID) (*dto.ResumoTurnoResponse, error) {
	turno, err := s.repo.BuscarPorID(ctx, turnoID)
	if err != nil {
		return nil, errors.New("turno não encontrado")
	}

	vendas, err := s.vendaRepo.ListarPorTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	porForma := map[string]decimal.Decimal{
		model.PagamentoDinheiro:      decimal.Zero,
		model.PagamentoPix:           decimal.Zero,
		model.PagamentoCartaoCredito: decimal.Zero,
		model.PagamentoCartaoDebito:  decimal.Zero,
	}
	for i := range vendas {
		v := &vendas[i]
		total = total.Add(v.ValorFinal)
		porForma[v.FormaPagamento] = porForma[v.FormaPagamento].Add(v.ValorFinal)
	}

	return &dto.ResumoTurnoResponse{
		Turno:            s.toResponse(ctx, turno),
		TotalVendas:      total,
		QtdVendas:        len(vendas),
		PorFormaPagto:    porForma,
		DinheiroEsperado: turno.ValorAbertura.Add(porForma[model.PagamentoDinheiro]),
	}, nil
}

func (s *turnoService) Historico(ctx context.Context, page, limit int) ([]dto.TurnoResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	turnos, total, err := s.repo.Historico(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TurnoResponse, 0, len(turnos))
	for i := range turnos {
		out = append(out, s.toResponse(ctx, &turnos[i]))
	}
	return out, total, nil
}

func (s *turnoService) toResponse(ctx context.Context, t *model.Turno) dto.TurnoResponse {
	resp := dto.TurnoResponse{
		ID:            t.ID.String(),
		Operador:      s.nomeOperador(ctx, t.PerfilID, t.FuncionarioID),
		ValorAbertura: t.ValorAbertura,
		Ativo:         t.Ativo,
		Observacoes:   t.Observacoes,
		AbertoEm:      t.AbertoEm.Format(time.RFC3339),
	}
	if t.ValorFechamento != nil {
		v := *t.ValorFechamento
		resp.ValorFechamento = &v
	}
	if t.FechadoEm != nil {
		f := t.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &f
	}
	return resp
}

func (s *turnoService) nomeOperador(ctx context.Context, perfilID, funcionarioID *uuid.UUID) string {
	if perfilID != nil {
		if p, err := s.perfilRepo.BuscarPorID(ctx, *perfilID); err == nil {
			return p.Nome
		}
	}
	if funcionarioID != nil {
		if f, err := s.funcionarioRepo.BuscarPorID(ctx, *funcionarioID); err == nil {
			return f.Nome
		}
	}
	return ""
}
