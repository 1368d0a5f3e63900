package service

import (
	"context"
	"testing"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opPerfil() Operador {
	id := uuid.New()
	return Operador{PerfilID: &id}
}

func buildComandaSvc() (ComandaService, *stubComandaRepo, *stubMesaRepo, *stubProdutoRepo) {
	mesas := newStubMesaRepo()
	produtos := newStubProdutoRepo()
	comandas := newStubComandaRepo(mesas, produtos)
	svc := NewComandaService(comandas, mesas, produtos, realtime.NoopPublisher{}, nil)
	return svc, comandas, mesas, produtos
}

func strptr(s string) *string { return &s }

func TestAdicionarItemCriaComandaImplicita(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(5, model.MesaLivre)
	feijoada := produtos.add("Feijoada Completa", "35.00")

	resp, err := svc.AdicionarItem(context.Background(), opPerfil(), dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  feijoada.ID.String(),
		Quantidade: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ComandaAberta, resp.Status)
	assert.Equal(t, 1, resp.Numero)
	require.Len(t, resp.Itens, 1)
	assert.Equal(t, "70", resp.ValorTotal.String())
	assert.Equal(t, model.ItemPendente, resp.Itens[0].Status)

	// mesa passa a ocupada no mesmo fluxo
	m, err := mesas.BuscarPorID(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaOcupada, m.Status)
}

func TestAdicionarItemReutilizaComandaAbertaDaMesa(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(3, model.MesaLivre)
	feijoada := produtos.add("Feijoada Completa", "35.00")
	suco := produtos.add("Suco de Laranja", "8.00")
	op := opPerfil()

	primeiro, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  feijoada.ID.String(),
		Quantidade: 2,
	})
	require.NoError(t, err)

	segundo, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  suco.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, primeiro.ID, segundo.ID)
	assert.Len(t, segundo.Itens, 2)
	assert.Equal(t, "78", segundo.ValorTotal.String())
}

func TestAdicionarItemMesaIndisponivel(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	produto := produtos.add("Picanha na Chapa", "58.00")

	for _, status := range []string{model.MesaManutencao, model.MesaAguardandoPagamento} {
		mesa := mesas.add(10, status)
		_, err := svc.AdicionarItem(context.Background(), opPerfil(), dto.AdicionarItemRequest{
			MesaID:     strptr(mesa.ID.String()),
			ProdutoID:  produto.ID.String(),
			Quantidade: 1,
		})
		assert.ErrorIs(t, err, ErrMesaIndisponivel, "status %s", status)
	}
}

func TestAdicionarItemProdutoInativo(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(1, model.MesaLivre)
	produto := produtos.add("Moqueca de Peixe", "49.90")
	produto.Ativo = false
	produtos.produtos[produto.ID] = produto

	_, err := svc.AdicionarItem(context.Background(), opPerfil(), dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	assert.Error(t, err)
}

func TestAdicionarItemPrecoCongelado(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(2, model.MesaLivre)
	produto := produtos.add("Caipirinha", "14.00")

	resp, err := svc.AdicionarItem(context.Background(), opPerfil(), dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)

	// catalog price change must not touch the comanda line
	produtos.produtos[produto.ID].Preco = produtos.produtos[produto.ID].Preco.Add(produtos.produtos[produto.ID].Preco)

	atual, err := svc.Buscar(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "14", atual.Itens[0].PrecoUnitario.String())
	assert.Equal(t, "14", atual.ValorTotal.String())
}

func TestEnviarParaCozinha(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(4, model.MesaLivre)
	produto := produtos.add("Feijoada Completa", "35.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)

	enviado, err := svc.EnviarParaCozinha(context.Background(), comandaID, dto.EnviarCozinhaRequest{
		ItemIDs: []string{resp.Itens[0].ID},
	})
	require.NoError(t, err)

	assert.Equal(t, model.ComandaEmPreparo, enviado.Status)
	assert.Equal(t, model.ItemAguardando, enviado.Itens[0].Status)
	assert.True(t, enviado.Itens[0].EnviadoCozinha)

	// re-sending the same item is rejected: it is no longer pendente
	_, err = svc.EnviarParaCozinha(context.Background(), comandaID, dto.EnviarCozinhaRequest{
		ItemIDs: []string{resp.Itens[0].ID},
	})
	assert.ErrorIs(t, err, ErrTransicaoInvalida)
}

func TestAvancarItemSequencial(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(6, model.MesaLivre)
	produto := produtos.add("Pudim de Leite", "12.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)
	itemID := uuid.MustParse(resp.Itens[0].ID)

	// pendente has no successor through Avancar; it must go through the send
	_, err = svc.AvancarItem(context.Background(), itemID)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)

	_, err = svc.EnviarParaCozinha(context.Background(), uuid.MustParse(resp.ID), dto.EnviarCozinhaRequest{
		ItemIDs: []string{resp.Itens[0].ID},
	})
	require.NoError(t, err)

	for _, esperado := range []string{model.ItemPreparando, model.ItemPronto, model.ItemEntregue} {
		item, err := svc.AvancarItem(context.Background(), itemID)
		require.NoError(t, err)
		assert.Equal(t, esperado, item.Status)
	}

	// entregue is terminal
	_, err = svc.AvancarItem(context.Background(), itemID)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)
}

func TestCancelarItemRecalculaTotal(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(7, model.MesaLivre)
	feijoada := produtos.add("Feijoada Completa", "35.00")
	suco := produtos.add("Suco de Laranja", "8.00")
	op := opPerfil()

	_, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  feijoada.ID.String(),
		Quantidade: 2,
	})
	require.NoError(t, err)
	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  suco.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "78", resp.ValorTotal.String())

	var sucoItemID uuid.UUID
	for _, item := range resp.Itens {
		if item.Produto == "Suco de Laranja" {
			sucoItemID = uuid.MustParse(item.ID)
		}
	}
	require.NotEqual(t, uuid.Nil, sucoItemID)

	depois, err := svc.CancelarItem(context.Background(), op, sucoItemID, "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, "70", depois.ValorTotal.String())

	// cancelling twice is an error
	_, err = svc.CancelarItem(context.Background(), op, sucoItemID, "de novo")
	assert.Error(t, err)
}

func TestCancelarItemEntregueImutavel(t *testing.T) {
	svc, comandas, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(8, model.MesaLivre)
	produto := produtos.add("Brigadeiro", "5.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)
	itemID := uuid.MustParse(resp.Itens[0].ID)

	item, err := comandas.BuscarItemPorID(context.Background(), itemID)
	require.NoError(t, err)
	item.Status = model.ItemEntregue
	require.NoError(t, comandas.AtualizarItemTx(nil, item))

	_, err = svc.CancelarItem(context.Background(), op, itemID, "tarde demais")
	assert.ErrorIs(t, err, ErrItemJaEntregue)
}

func TestItensDeComandaFechadaImutaveis(t *testing.T) {
	svc, comandas, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(9, model.MesaLivre)
	produto := produtos.add("Caipirinha", "18.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)
	itemID := uuid.MustParse(resp.Itens[0].ID)

	require.NoError(t, comandas.FecharTx(nil, comandaID, time.Now()))

	// cancelar reabriria o total de uma comanda já faturada
	_, err = svc.CancelarItem(context.Background(), op, itemID, "depois do fechamento")
	assert.ErrorIs(t, err, ErrComandaFechada)

	_, err = svc.AvancarItem(context.Background(), itemID)
	assert.ErrorIs(t, err, ErrComandaFechada)

	depois, err := svc.Buscar(context.Background(), comandaID)
	require.NoError(t, err)
	assert.Equal(t, "18", depois.ValorTotal.String())
	assert.Equal(t, model.ItemPendente, depois.Itens[0].Status)
}

func TestMarcarProntaParaFechar(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(9, model.MesaLivre)
	produto := produtos.add("Picanha na Chapa", "58.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)

	pronta, err := svc.MarcarProntaParaFechar(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.ComandaProntaParaFechar, pronta.Status)

	m, err := mesas.BuscarPorID(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaAguardandoPagamento, m.Status)
}

func TestMarcarProntaParaFecharSemItensAtivos(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(11, model.MesaLivre)
	produto := produtos.add("Refrigerante Lata", "6.50")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)

	_, err = svc.CancelarItem(context.Background(), op, uuid.MustParse(resp.Itens[0].ID), "pedido errado")
	require.NoError(t, err)

	_, err = svc.MarcarProntaParaFechar(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, ErrSemItensAtivos)
}

func TestCancelarComandaLiberaMesa(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(12, model.MesaLivre)
	produto := produtos.add("Moqueca de Peixe", "49.90")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 2,
	})
	require.NoError(t, err)
	comandaID := uuid.MustParse(resp.ID)

	require.NoError(t, svc.CancelarComanda(context.Background(), op, comandaID, "mesa desistiu"))

	cancelada, err := svc.Buscar(context.Background(), comandaID)
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCancelada, cancelada.Status)
	assert.Equal(t, "0", cancelada.ValorTotal.String())
	for _, item := range cancelada.Itens {
		assert.Equal(t, model.ItemCancelado, item.Status)
	}

	m, err := mesas.BuscarPorID(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaLivre, m.Status)

	// cancelled comanda is immutable
	err = svc.CancelarComanda(context.Background(), op, comandaID, "de novo")
	assert.ErrorIs(t, err, ErrComandaFechada)
}

func TestCozinhaBoardAgrupaPorMesa(t *testing.T) {
	svc, _, mesas, produtos := buildComandaSvc()
	mesa := mesas.add(2, model.MesaLivre)
	produto := produtos.add("Feijoada Completa", "35.00")
	op := opPerfil()

	resp, err := svc.AdicionarItem(context.Background(), op, dto.AdicionarItemRequest{
		MesaID:     strptr(mesa.ID.String()),
		ProdutoID:  produto.ID.String(),
		Quantidade: 1,
	})
	require.NoError(t, err)

	// pendente items stay off the board until sent
	board, err := svc.CozinhaBoard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board.Mesas)

	_, err = svc.EnviarParaCozinha(context.Background(), uuid.MustParse(resp.ID), dto.EnviarCozinhaRequest{
		ItemIDs: []string{resp.Itens[0].ID},
	})
	require.NoError(t, err)

	board, err = svc.CozinhaBoard(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Mesas, 1)
	assert.Equal(t, 2, board.Mesas[0].MesaNumero)
	require.Len(t, board.Mesas[0].Categorias, 1)
	require.Len(t, board.Mesas[0].Categorias[0].Itens, 1)
	assert.Equal(t, model.ItemAguardando, board.Mesas[0].Categorias[0].Itens[0].Status)
}
