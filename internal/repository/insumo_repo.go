package repository

import (
	"context"

	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InsumoRepository interface {
	Criar(ctx context.Context, i *model.Insumo) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	Listar(ctx context.Context) ([]model.Insumo, error)
	Atualizar(ctx context.Context, i *model.Insumo) error
	Desativar(ctx context.Context, id uuid.UUID) error
	// ListarAbaixoMinimo returns insumos at or below their minimum stock
	ListarAbaixoMinimo(ctx context.Context) ([]model.Insumo, error)

	// Movements — entries are immutable, never updated or deleted
	CriarEntrada(ctx context.Context, e *model.EntradaEstoque) error
	CriarSaida(ctx context.Context, s *model.SaidaEstoque) error
	CriarSaidaTx(tx *gorm.DB, s *model.SaidaEstoque) error
	ListarEntradas(ctx context.Context, insumoID uuid.UUID) ([]model.EntradaEstoque, error)
	ListarSaidas(ctx context.Context, insumoID uuid.UUID) ([]model.SaidaEstoque, error)

	// AjustarEstoque applies a delta to estoque_atual (positive or negative)
	AjustarEstoque(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// Vinculos produto ↔ insumo
	CriarVinculo(ctx context.Context, v *model.ProdutoInsumo) error
	ListarVinculosPorProduto(ctx context.Context, produtoID uuid.UUID) ([]model.ProdutoInsumo, error)
	RemoverVinculo(ctx context.Context, id uuid.UUID) error
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Criar(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepo) Listar(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome asc").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Atualizar(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *insumoRepo) ListarAbaixoMinimo(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).
		Where("ativo = true AND estoque_atual <= estoque_minimo").
		Order("nome asc").
		Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) CriarEntrada(ctx context.Context, e *model.EntradaEstoque) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *insumoRepo) CriarSaida(ctx context.Context, s *model.SaidaEstoque) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *insumoRepo) CriarSaidaTx(tx *gorm.DB, s *model.SaidaEstoque) error {
	return tx.Create(s).Error
}

func (r *insumoRepo) ListarEntradas(ctx context.Context, insumoID uuid.UUID) ([]model.EntradaEstoque, error) {
	var entradas []model.EntradaEstoque
	err := r.db.WithContext(ctx).Where("insumo_id = ?", insumoID).Order("created_at DESC").Find(&entradas).Error
	return entradas, err
}

func (r *insumoRepo) ListarSaidas(ctx context.Context, insumoID uuid.UUID) ([]model.SaidaEstoque, error) {
	var saidas []model.SaidaEstoque
	err := r.db.WithContext(ctx).Where("insumo_id = ?", insumoID).Order("created_at DESC").Find(&saidas).Error
	return saidas, err
}

func (r *insumoRepo) AjustarEstoque(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *insumoRepo) AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Insumo{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *insumoRepo) CriarVinculo(ctx context.Context, v *model.ProdutoInsumo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *insumoRepo) ListarVinculosPorProduto(ctx context.Context, produtoID uuid.UUID) ([]model.ProdutoInsumo, error) {
	var vinculos []model.ProdutoInsumo
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).Preload("Insumo").Find(&vinculos).Error
	return vinculos, err
}

func (r *insumoRepo) RemoverVinculo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProdutoInsumo{}, "id = ?", id).Error
}
