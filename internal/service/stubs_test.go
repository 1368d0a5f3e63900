package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"
	"chefcomanda/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── stubComandaRepo ──────────────────────────────────────────────────────────

// stubComandaRepo is an in-memory ComandaRepository. DB() returns nil so the
// services run their transaction bodies directly via runTx.
type stubComandaRepo struct {
	mu        sync.Mutex
	comandas  map[uuid.UUID]*model.Comanda
	itens     map[uuid.UUID]*model.ComandaItem
	numeroSeq int
	// relations resolved on read
	mesas    *stubMesaRepo
	produtos *stubProdutoRepo
}

func newStubComandaRepo(mesas *stubMesaRepo, produtos *stubProdutoRepo) *stubComandaRepo {
	return &stubComandaRepo{
		comandas: make(map[uuid.UUID]*model.Comanda),
		itens:    make(map[uuid.UUID]*model.ComandaItem),
		mesas:    mesas,
		produtos: produtos,
	}
}

func (r *stubComandaRepo) DB() *gorm.DB { return nil }

func (r *stubComandaRepo) CriarTx(_ *gorm.DB, c *model.Comanda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.comandas[c.ID] = &cp
	return nil
}

func (r *stubComandaRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comandas[id]
	if !ok {
		return nil, errNotFound
	}
	return r.hydrate(c), nil
}

func (r *stubComandaRepo) BuscarAbertaPorMesa(_ context.Context, mesaID uuid.UUID) (*model.Comanda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comandas {
		if c.MesaID != nil && *c.MesaID == mesaID &&
			(c.Status == model.ComandaAberta || c.Status == model.ComandaEmPreparo || c.Status == model.ComandaProntaParaFechar) {
			return r.hydrate(c), nil
		}
	}
	return nil, errNotFound
}

func (r *stubComandaRepo) Listar(_ context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Comanda
	for _, c := range r.comandas {
		if filter.Status != "" && filter.Status != "all" && c.Status != filter.Status {
			continue
		}
		out = append(out, *r.hydrate(c))
	}
	return out, int64(len(out)), nil
}

func (r *stubComandaRepo) ContarAbertas(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, c := range r.comandas {
		if c.Status != model.ComandaFechada && c.Status != model.ComandaCancelada {
			total++
		}
	}
	return total, nil
}

func (r *stubComandaRepo) AtualizarStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comandas[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (r *stubComandaRepo) FecharTx(_ *gorm.DB, id uuid.UUID, fechadaEm time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comandas[id]
	if !ok {
		return errNotFound
	}
	c.Status = model.ComandaFechada
	c.FechadaEm = &fechadaEm
	return nil
}

func (r *stubComandaRepo) NextNumero(_ context.Context, _ *gorm.DB) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.numeroSeq++
	return r.numeroSeq, nil
}

func (r *stubComandaRepo) CriarItemTx(_ *gorm.DB, item *model.ComandaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.itens[item.ID] = &cp
	return nil
}

func (r *stubComandaRepo) BuscarItemPorID(_ context.Context, id uuid.UUID) (*model.ComandaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.itens[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *item
	if r.produtos != nil {
		if p, ok := r.produtos.produtos[cp.ProdutoID]; ok {
			pc := *p
			cp.Produto = &pc
		}
	}
	return &cp, nil
}

func (r *stubComandaRepo) AtualizarItemTx(_ *gorm.DB, item *model.ComandaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.itens[item.ID]; !ok {
		return errNotFound
	}
	cp := *item
	cp.Produto = nil
	cp.Comanda = nil
	r.itens[item.ID] = &cp
	return nil
}

func (r *stubComandaRepo) ListarItensCozinha(_ context.Context) ([]model.ComandaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ComandaItem
	for _, item := range r.itens {
		if !item.EnviadoCozinha {
			continue
		}
		switch item.Status {
		case model.ItemAguardando, model.ItemPreparando, model.ItemPronto:
		default:
			continue
		}
		cp := *item
		if c, ok := r.comandas[cp.ComandaID]; ok {
			cc := r.hydrate(c)
			cp.Comanda = cc
		}
		if r.produtos != nil {
			if p, ok := r.produtos.produtos[cp.ProdutoID]; ok {
				pc := *p
				cp.Produto = &pc
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubComandaRepo) RecalcularTotalTx(_ *gorm.DB, comandaID uuid.UUID) error {
	c, ok := r.comandas[comandaID]
	if !ok {
		return errNotFound
	}
	total := decimal.Zero
	for _, item := range r.itens {
		if item.ComandaID != comandaID || item.Status == model.ItemCancelado {
			continue
		}
		total = total.Add(item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))))
	}
	c.ValorTotal = total
	return nil
}

// hydrate attaches items and the mesa relation to a copy of c.
// Caller must hold r.mu.
func (r *stubComandaRepo) hydrate(c *model.Comanda) *model.Comanda {
	cp := *c
	cp.Itens = nil
	for _, item := range r.itens {
		if item.ComandaID != c.ID {
			continue
		}
		ic := *item
		if r.produtos != nil {
			if p, ok := r.produtos.produtos[ic.ProdutoID]; ok {
				pc := *p
				ic.Produto = &pc
			}
		}
		cp.Itens = append(cp.Itens, ic)
	}
	if cp.MesaID != nil && r.mesas != nil {
		if m, ok := r.mesas.mesas[*cp.MesaID]; ok {
			mc := *m
			cp.Mesa = &mc
		}
	}
	return &cp
}

var _ repository.ComandaRepository = (*stubComandaRepo)(nil)

// ── stubMesaRepo ─────────────────────────────────────────────────────────────

type stubMesaRepo struct {
	mesas map[uuid.UUID]*model.Mesa
}

func newStubMesaRepo() *stubMesaRepo {
	return &stubMesaRepo{mesas: make(map[uuid.UUID]*model.Mesa)}
}

func (r *stubMesaRepo) add(numero int, status string) *model.Mesa {
	m := &model.Mesa{ID: uuid.New(), Numero: numero, Capacidade: 4, Status: status, Ativo: true}
	r.mesas[m.ID] = m
	return m
}

func (r *stubMesaRepo) Criar(_ context.Context, m *model.Mesa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.mesas[m.ID] = &cp
	return nil
}

func (r *stubMesaRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	m, ok := r.mesas[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMesaRepo) BuscarPorNumero(_ context.Context, numero int) (*model.Mesa, error) {
	for _, m := range r.mesas {
		if m.Numero == numero {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *stubMesaRepo) Listar(_ context.Context, incluirInativas bool) ([]model.Mesa, error) {
	var out []model.Mesa
	for _, m := range r.mesas {
		if !incluirInativas && !m.Ativo {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMesaRepo) Atualizar(_ context.Context, m *model.Mesa) error {
	if _, ok := r.mesas[m.ID]; !ok {
		return errNotFound
	}
	cp := *m
	r.mesas[m.ID] = &cp
	return nil
}

func (r *stubMesaRepo) AtualizarStatus(_ context.Context, id uuid.UUID, status string) error {
	return r.AtualizarStatusTx(nil, id, status)
}

func (r *stubMesaRepo) AtualizarStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	m, ok := r.mesas[id]
	if !ok {
		return errNotFound
	}
	m.Status = status
	return nil
}

func (r *stubMesaRepo) Desativar(_ context.Context, id uuid.UUID) error {
	m, ok := r.mesas[id]
	if !ok {
		return errNotFound
	}
	m.Ativo = false
	return nil
}

func (r *stubMesaRepo) Reativar(_ context.Context, id uuid.UUID) error {
	m, ok := r.mesas[id]
	if !ok {
		return errNotFound
	}
	m.Ativo = true
	return nil
}

var _ repository.MesaRepository = (*stubMesaRepo)(nil)

// ── stubProdutoRepo ──────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) add(nome, preco string) *model.Produto {
	valor, _ := decimal.NewFromString(preco)
	p := &model.Produto{ID: uuid.New(), Nome: nome, Preco: valor, Ativo: true, CategoriaID: uuid.New()}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Criar(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.produtos[p.ID] = &cp
	return nil
}

func (r *stubProdutoRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProdutoRepo) Listar(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Atualizar(_ context.Context, p *model.Produto) error {
	if _, ok := r.produtos[p.ID]; !ok {
		return errNotFound
	}
	cp := *p
	r.produtos[p.ID] = &cp
	return nil
}

func (r *stubProdutoRepo) Desativar(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return errNotFound
	}
	p.Ativo = false
	return nil
}

func (r *stubProdutoRepo) Reativar(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return errNotFound
	}
	p.Ativo = true
	return nil
}

func (r *stubProdutoRepo) ListarPorCategoria(_ context.Context, categoriaID uuid.UUID) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.CategoriaID == categoriaID && p.Ativo {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ── stubTurnoRepo ────────────────────────────────────────────────────────────

type stubTurnoRepo struct {
	turnos map[uuid.UUID]*model.Turno
}

func newStubTurnoRepo() *stubTurnoRepo {
	return &stubTurnoRepo{turnos: make(map[uuid.UUID]*model.Turno)}
}

func (r *stubTurnoRepo) Criar(_ context.Context, t *model.Turno) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.turnos[t.ID] = &cp
	return nil
}

func (r *stubTurnoRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTurnoRepo) BuscarAtivo(_ context.Context) (*model.Turno, error) {
	for _, t := range r.turnos {
		if t.Ativo {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTurnoRepo) ContarAtivos(_ context.Context) (int64, error) {
	var n int64
	for _, t := range r.turnos {
		if t.Ativo {
			n++
		}
	}
	return n, nil
}

func (r *stubTurnoRepo) Atualizar(_ context.Context, t *model.Turno) error {
	if _, ok := r.turnos[t.ID]; !ok {
		return errNotFound
	}
	cp := *t
	r.turnos[t.ID] = &cp
	return nil
}

func (r *stubTurnoRepo) Historico(_ context.Context, _, _ int) ([]model.Turno, int64, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

var _ repository.TurnoRepository = (*stubTurnoRepo)(nil)

// ── stubVendaRepo ────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas     map[uuid.UUID]*model.Venda
	porComanda map[uuid.UUID]*model.Venda
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{
		vendas:     make(map[uuid.UUID]*model.Venda),
		porComanda: make(map[uuid.UUID]*model.Venda),
	}
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

func (r *stubVendaRepo) CriarTx(_ *gorm.DB, v *model.Venda) error {
	if _, ok := r.porComanda[v.ComandaID]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cp := *v
	r.vendas[v.ID] = &cp
	r.porComanda[v.ComandaID] = &cp
	return nil
}

func (r *stubVendaRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVendaRepo) BuscarPorComanda(_ context.Context, comandaID uuid.UUID) (*model.Venda, error) {
	v, ok := r.porComanda[comandaID]
	if !ok {
		return nil, errNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVendaRepo) Atualizar(_ context.Context, v *model.Venda) error {
	if _, ok := r.vendas[v.ID]; !ok {
		return errNotFound
	}
	cp := *v
	r.vendas[v.ID] = &cp
	return nil
}

func (r *stubVendaRepo) Listar(_ context.Context, _ dto.VendaFilter) ([]model.Venda, int64, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) ListarPorTurno(_ context.Context, turnoID uuid.UUID) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if v.TurnoID == turnoID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVendaRepo) ListPendingRetries(_ context.Context, _ time.Time, _ int) ([]model.Venda, error) {
	return nil, nil
}

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── stubInsumoRepo ───────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos  map[uuid.UUID]*model.Insumo
	vinculos []model.ProdutoInsumo
	entradas []model.EntradaEstoque
	saidas   []model.SaidaEstoque
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) add(nome string, estoque, minimo string) *model.Insumo {
	atual, _ := decimal.NewFromString(estoque)
	min, _ := decimal.NewFromString(minimo)
	i := &model.Insumo{ID: uuid.New(), Nome: nome, UnidadeMedida: "kg", EstoqueAtual: atual, EstoqueMinimo: min, Ativo: true}
	r.insumos[i.ID] = i
	return i
}

func (r *stubInsumoRepo) vincular(produtoID, insumoID uuid.UUID, quantidade string) {
	q, _ := decimal.NewFromString(quantidade)
	r.vinculos = append(r.vinculos, model.ProdutoInsumo{
		ID: uuid.New(), ProdutoID: produtoID, InsumoID: insumoID, Quantidade: q,
	})
}

func (r *stubInsumoRepo) Criar(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubInsumoRepo) Listar(_ context.Context) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInsumoRepo) Atualizar(_ context.Context, i *model.Insumo) error {
	if _, ok := r.insumos[i.ID]; !ok {
		return errNotFound
	}
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) Desativar(_ context.Context, id uuid.UUID) error {
	i, ok := r.insumos[id]
	if !ok {
		return errNotFound
	}
	i.Ativo = false
	return nil
}

func (r *stubInsumoRepo) ListarAbaixoMinimo(_ context.Context) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if i.Ativo && i.EstoqueAtual.LessThanOrEqual(i.EstoqueMinimo) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) CriarEntrada(_ context.Context, e *model.EntradaEstoque) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entradas = append(r.entradas, *e)
	return nil
}

func (r *stubInsumoRepo) CriarSaida(_ context.Context, s *model.SaidaEstoque) error {
	return r.CriarSaidaTx(nil, s)
}

func (r *stubInsumoRepo) CriarSaidaTx(_ *gorm.DB, s *model.SaidaEstoque) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.saidas = append(r.saidas, *s)
	return nil
}

func (r *stubInsumoRepo) ListarEntradas(_ context.Context, insumoID uuid.UUID) ([]model.EntradaEstoque, error) {
	var out []model.EntradaEstoque
	for _, e := range r.entradas {
		if e.InsumoID == insumoID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) ListarSaidas(_ context.Context, insumoID uuid.UUID) ([]model.SaidaEstoque, error) {
	var out []model.SaidaEstoque
	for _, s := range r.saidas {
		if s.InsumoID == insumoID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) AjustarEstoque(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.AjustarEstoqueTx(nil, id, delta)
}

func (r *stubInsumoRepo) AjustarEstoqueTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	i, ok := r.insumos[id]
	if !ok {
		return errNotFound
	}
	i.EstoqueAtual = i.EstoqueAtual.Add(delta)
	return nil
}

func (r *stubInsumoRepo) CriarVinculo(_ context.Context, v *model.ProdutoInsumo) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vinculos = append(r.vinculos, *v)
	return nil
}

func (r *stubInsumoRepo) ListarVinculosPorProduto(_ context.Context, produtoID uuid.UUID) ([]model.ProdutoInsumo, error) {
	var out []model.ProdutoInsumo
	for _, v := range r.vinculos {
		if v.ProdutoID == produtoID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) RemoverVinculo(_ context.Context, id uuid.UUID) error {
	for idx, v := range r.vinculos {
		if v.ID == id {
			r.vinculos = append(r.vinculos[:idx], r.vinculos[idx+1:]...)
			return nil
		}
	}
	return errNotFound
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── stubPerfilRepo / stubFuncionarioRepo ─────────────────────────────────────

type stubPerfilRepo struct {
	perfis map[uuid.UUID]*model.Perfil
}

func newStubPerfilRepo() *stubPerfilRepo {
	return &stubPerfilRepo{perfis: make(map[uuid.UUID]*model.Perfil)}
}

func (r *stubPerfilRepo) Criar(_ context.Context, p *model.Perfil) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.perfis[p.ID] = &cp
	return nil
}

func (r *stubPerfilRepo) BuscarPorEmail(_ context.Context, email string) (*model.Perfil, error) {
	for _, p := range r.perfis {
		if p.Email == email && p.Ativo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *stubPerfilRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Perfil, error) {
	p, ok := r.perfis[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPerfilRepo) Atualizar(_ context.Context, p *model.Perfil) error {
	if _, ok := r.perfis[p.ID]; !ok {
		return errNotFound
	}
	cp := *p
	r.perfis[p.ID] = &cp
	return nil
}

var _ repository.PerfilRepository = (*stubPerfilRepo)(nil)

type stubFuncionarioRepo struct {
	funcionarios map[uuid.UUID]*model.Funcionario
}

func newStubFuncionarioRepo() *stubFuncionarioRepo {
	return &stubFuncionarioRepo{funcionarios: make(map[uuid.UUID]*model.Funcionario)}
}

func (r *stubFuncionarioRepo) Criar(_ context.Context, f *model.Funcionario) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	cp := *f
	r.funcionarios[f.ID] = &cp
	return nil
}

func (r *stubFuncionarioRepo) BuscarPorCPF(_ context.Context, cpf string) (*model.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.CPF == cpf && f.Ativo {
			cp := *f
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *stubFuncionarioRepo) BuscarPorID(_ context.Context, id uuid.UUID) (*model.Funcionario, error) {
	f, ok := r.funcionarios[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *stubFuncionarioRepo) Listar(_ context.Context, incluirInativos bool) ([]model.Funcionario, error) {
	var out []model.Funcionario
	for _, f := range r.funcionarios {
		if !incluirInativos && !f.Ativo {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFuncionarioRepo) Atualizar(_ context.Context, f *model.Funcionario) error {
	if _, ok := r.funcionarios[f.ID]; !ok {
		return errNotFound
	}
	cp := *f
	r.funcionarios[f.ID] = &cp
	return nil
}

func (r *stubFuncionarioRepo) Desativar(_ context.Context, id uuid.UUID) error {
	f, ok := r.funcionarios[id]
	if !ok {
		return errNotFound
	}
	f.Ativo = false
	return nil
}

func (r *stubFuncionarioRepo) Reativar(_ context.Context, id uuid.UUID) error {
	f, ok := r.funcionarios[id]
	if !ok {
		return errNotFound
	}
	f.Ativo = true
	return nil
}

var _ repository.FuncionarioRepository = (*stubFuncionarioRepo)(nil)
