package service

import (
	"context"
	"testing"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/realtime"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEstoqueSvc() (EstoqueService, *stubInsumoRepo, *stubProdutoRepo) {
	insumos := newStubInsumoRepo()
	produtos := newStubProdutoRepo()
	return NewEstoqueService(insumos, produtos, realtime.NoopPublisher{}), insumos, produtos
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRegistrarEntradaAtualizaEstoqueECusto(t *testing.T) {
	svc, insumos, _ := buildEstoqueSvc()
	feijao := insumos.add("Feijão", "5", "2")

	resp, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarEntradaRequest{
		InsumoID:      feijao.ID.String(),
		Quantidade:    dec("10"),
		CustoUnitario: dec("7.50"),
		Motivo:        "compra",
	})
	require.NoError(t, err)
	assert.Equal(t, "15", resp.EstoqueAtual.String())
	assert.Equal(t, "7.5", resp.CustoUnitario.String())

	entradas, err := insumos.ListarEntradas(context.Background(), feijao.ID)
	require.NoError(t, err)
	require.Len(t, entradas, 1)
	assert.Equal(t, "compra", entradas[0].Motivo)
}

func TestRegistrarEntradaQuantidadeInvalida(t *testing.T) {
	svc, insumos, _ := buildEstoqueSvc()
	feijao := insumos.add("Feijão", "5", "2")

	_, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarEntradaRequest{
		InsumoID:   feijao.ID.String(),
		Quantidade: dec("0"),
		Motivo:     "compra",
	})
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)

	_, err = svc.RegistrarEntrada(context.Background(), dto.RegistrarEntradaRequest{
		InsumoID:   feijao.ID.String(),
		Quantidade: dec("-3"),
		Motivo:     "compra",
	})
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)
}

func TestRegistrarSaidaManual(t *testing.T) {
	svc, insumos, _ := buildEstoqueSvc()
	leite := insumos.add("Leite", "12", "4")
	motivo := "embalagem danificada"

	resp, err := svc.RegistrarSaida(context.Background(), dto.RegistrarSaidaRequest{
		InsumoID:   leite.ID.String(),
		Quantidade: dec("2.5"),
		Tipo:       "perda",
		Motivo:     &motivo,
	})
	require.NoError(t, err)
	assert.Equal(t, "9.5", resp.EstoqueAtual.String())

	saidas, err := insumos.ListarSaidas(context.Background(), leite.ID)
	require.NoError(t, err)
	require.Len(t, saidas, 1)
	assert.Equal(t, "perda", saidas[0].Tipo)
}

func TestRegistrarSaidaInsumoInexistente(t *testing.T) {
	svc, _, _ := buildEstoqueSvc()
	_, err := svc.RegistrarSaida(context.Background(), dto.RegistrarSaidaRequest{
		InsumoID:   uuid.NewString(),
		Quantidade: dec("1"),
		Tipo:       "ajuste",
	})
	assert.Error(t, err)
}

func TestAlertasAbaixoDoMinimo(t *testing.T) {
	svc, insumos, _ := buildEstoqueSvc()
	insumos.add("Arroz", "20", "5")   // acima do mínimo
	insumos.add("Feijão", "5", "5")   // exatamente no mínimo: alerta
	insumos.add("Tomate", "1.2", "3") // abaixo: alerta
	inativo := insumos.add("Óleo", "0", "2")
	require.NoError(t, insumos.Desativar(context.Background(), inativo.ID))

	alertas, err := svc.Alertas(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 2)
	nomes := map[string]bool{}
	for _, a := range alertas {
		nomes[a.Nome] = true
	}
	assert.True(t, nomes["Feijão"])
	assert.True(t, nomes["Tomate"])
}

func TestVincularInsumoAProduto(t *testing.T) {
	svc, insumos, produtos := buildEstoqueSvc()
	feijao := insumos.add("Feijão", "10", "2")
	feijoada := produtos.add("Feijoada", "35.00")

	require.NoError(t, svc.VincularInsumo(context.Background(), dto.VincularInsumoRequest{
		ProdutoID:  feijoada.ID.String(),
		InsumoID:   feijao.ID.String(),
		Quantidade: dec("0.400"),
	}))

	vinculos, err := insumos.ListarVinculosPorProduto(context.Background(), feijoada.ID)
	require.NoError(t, err)
	require.Len(t, vinculos, 1)
	assert.Equal(t, "0.4", vinculos[0].Quantidade.String())

	require.NoError(t, svc.RemoverVinculo(context.Background(), vinculos[0].ID))
	vinculos, err = insumos.ListarVinculosPorProduto(context.Background(), feijoada.ID)
	require.NoError(t, err)
	assert.Empty(t, vinculos)
}

func TestVincularInsumoProdutoInexistente(t *testing.T) {
	svc, insumos, _ := buildEstoqueSvc()
	feijao := insumos.add("Feijão", "10", "2")

	err := svc.VincularInsumo(context.Background(), dto.VincularInsumoRequest{
		ProdutoID:  uuid.NewString(),
		InsumoID:   feijao.ID.String(),
		Quantidade: dec("0.1"),
	})
	assert.Error(t, err)
}

func TestCriarInsumo(t *testing.T) {
	svc, _, _ := buildEstoqueSvc()
	resp, err := svc.CriarInsumo(context.Background(), dto.CriarInsumoRequest{
		Nome:          "Farinha",
		UnidadeMedida: "kg",
		EstoqueMinimo: dec("3"),
		CustoUnitario: dec("4.20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.EstoqueAtual.String())
	assert.True(t, resp.Ativo)

	lista, err := svc.ListarInsumos(context.Background())
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}
