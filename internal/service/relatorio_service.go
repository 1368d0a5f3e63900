package service

import (
	"context"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/shopspring/decimal"
)

type RelatorioService interface {
	Diario(ctx context.Context, data string) (*dto.RelatorioDiarioResponse, error)
	ProdutosMaisVendidos(ctx context.Context, data string, limit int) ([]dto.ProdutoMaisVendido, error)
}

type relatorioService struct {
	vendaRepo   repository.VendaRepository
	comandaRepo repository.ComandaRepository
}

func NewRelatorioService(vendaRepo repository.VendaRepository, comandaRepo repository.ComandaRepository) RelatorioService {
	return &relatorioService{vendaRepo: vendaRepo, comandaRepo: comandaRepo}
}

// Diario aggregates one day of vendas; empty data means today.
func (s *relatorioService) Diario(ctx context.Context, data string) (*dto.RelatorioDiarioResponse, error) {
	if data == "" {
		data = time.Now().Format("2006-01-02")
	}

	vendas, _, err := s.vendaRepo.Listar(ctx, dto.VendaFilter{Data: data, Page: 1, Limit: 10000})
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
		total = total.Add(vendas[i].ValorFinal)
		porForma[vendas[i].FormaPagamento] = porForma[vendas[i].FormaPagamento].Add(vendas[i].ValorFinal)
	}

	ticketMedio := decimal.Zero
	if len(vendas) > 0 {
		ticketMedio = total.DivRound(decimal.NewFromInt(int64(len(vendas))), 2)
	}

	_, abertas, err := s.comandaRepo.Listar(ctx, dto.ComandaFilter{Status: model.ComandaAberta, Data: data, Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}

	return &dto.RelatorioDiarioResponse{
		Data:            data,
		TotalVendas:     total,
		QtdVendas:       len(vendas),
		TicketMedio:     ticketMedio,
		PorFormaPagto:   porForma,
		ComandasAbertas: int(abertas),
	}, nil
}

// ProdutosMaisVendidos ranks products by quantity sold on the given day,
// counting only non-cancelled items of closed comandas.
func (s *relatorioService) ProdutosMaisVendidos(ctx context.Context, data string, limit int) ([]dto.ProdutoMaisVendido, error) {
	if data == "" {
		data = time.Now().Format("2006-01-02")
	}
	if limit < 1 {
		limit = 10
	}

	type linha struct {
		ProdutoID  string
		Nome       string
		Quantidade int
		Faturado   decimal.Decimal
	}
	var linhas []linha

	err := s.vendaRepo.DB().WithContext(ctx).Raw(`
		SELECT p.id AS produto_id, p.nome,
		       SUM(ci.quantidade) AS quantidade,
		       SUM(ci.quantidade * ci.preco_unitario) AS faturado
		FROM comanda_itens ci
		JOIN comandas c ON c.id = ci.comanda_id
		JOIN produtos p ON p.id = ci.produto_id
		WHERE c.status = ?
		  AND ci.status <> ?
		  AND DATE(c.fechada_em) = ?
		GROUP BY p.id, p.nome
		ORDER BY quantidade DESC
		LIMIT ?`,
		model.ComandaFechada, model.ItemCancelado, data, limit,
	).Scan(&linhas).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProdutoMaisVendido, 0, len(linhas))
	for _, l := range linhas {
		out = append(out, dto.ProdutoMaisVendido{
			ProdutoID:  l.ProdutoID,
			Nome:       l.Nome,
			Quantidade: l.Quantidade,
			Faturado:   l.Faturado,
		})
	}
	return out, nil
}
