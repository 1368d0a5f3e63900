package repository

import (
	"context"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComandaRepository is the data access contract for comandas and their items.
// The lifecycle service depends on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via in-memory stubs.
type ComandaRepository interface {
	CriarTx(tx *gorm.DB, c *model.Comanda) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	BuscarAbertaPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.Comanda, error)
	Listar(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error)
	// ContarAbertas counts every comanda still in flight, regardless of the
	// day it was opened. Used to block turno close.
	ContarAbertas(ctx context.Context) (int64, error)
	AtualizarStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	FecharTx(tx *gorm.DB, id uuid.UUID, fechadaEm time.Time) error
	// NextNumero reserves the next sequential display number
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)

	// Items
	CriarItemTx(tx *gorm.DB, item *model.ComandaItem) error
	BuscarItemPorID(ctx context.Context, id uuid.UUID) (*model.ComandaItem, error)
	AtualizarItemTx(tx *gorm.DB, item *model.ComandaItem) error
	ListarItensCozinha(ctx context.Context) ([]model.ComandaItem, error)

	// RecalcularTotalTx recomputes valor_total from non-cancelled items inside
	// the caller's transaction — the single place the total invariant lives.
	RecalcularTotalTx(tx *gorm.DB, comandaID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so the service can open transactions.
	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) DB() *gorm.DB { return r.db }

func (r *comandaRepo) CriarTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Create(c).Error
}

func (r *comandaRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Itens.Produto.Categoria").
		Preload("Mesa").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) BuscarAbertaPorMesa(ctx context.Context, mesaID uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Where("mesa_id = ? AND status NOT IN ?", mesaID, []string{model.ComandaFechada, model.ComandaCancelada}).
		Preload("Itens.Produto.Categoria").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) Listar(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error) {
	var comandas []model.Comanda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comanda{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Data != "" {
		q = q.Where("DATE(aberta_em) = ?", filter.Data)
	} else {
		q = q.Where("DATE(aberta_em) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Itens.Produto.Categoria").Preload("Mesa").
		Order("aberta_em DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&comandas).Error

	return comandas, total, err
}

func (r *comandaRepo) ContarAbertas(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Comanda{}).
		Where("status NOT IN ?", []string{model.ComandaFechada, model.ComandaCancelada}).
		Count(&total).Error
	return total, err
}

func (r *comandaRepo) AtualizarStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Comanda{}).Where("id = ?", id).Update("status", status).Error
}

func (r *comandaRepo) FecharTx(tx *gorm.DB, id uuid.UUID, fechadaEm time.Time) error {
	return tx.Model(&model.Comanda{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.ComandaFechada,
		"fechada_em": fechadaEm,
	}).Error
}

func (r *comandaRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('comandas_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *comandaRepo) CriarItemTx(tx *gorm.DB, item *model.ComandaItem) error {
	return tx.Create(item).Error
}

func (r *comandaRepo) BuscarItemPorID(ctx context.Context, id uuid.UUID) (*model.ComandaItem, error) {
	var item model.ComandaItem
	err := r.db.WithContext(ctx).Preload("Produto.Categoria").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *comandaRepo) AtualizarItemTx(tx *gorm.DB, item *model.ComandaItem) error {
	return tx.Save(item).Error
}

func (r *comandaRepo) ListarItensCozinha(ctx context.Context) ([]model.ComandaItem, error) {
	var itens []model.ComandaItem
	err := r.db.WithContext(ctx).
		Where("enviado_cozinha = true AND status IN ?",
			[]string{model.ItemAguardando, model.ItemPreparando, model.ItemPronto}).
		Preload("Produto.Categoria").
		Preload("Comanda.Mesa").
		Order("created_at ASC").
		Find(&itens).Error
	return itens, err
}

func (r *comandaRepo) RecalcularTotalTx(tx *gorm.DB, comandaID uuid.UUID) error {
	return tx.Exec(`
		UPDATE comandas SET valor_total = COALESCE((
			SELECT SUM(quantidade * preco_unitario)
			FROM comanda_itens
			WHERE comanda_id = ? AND status <> ?
		), 0)
		WHERE id = ?`, comandaID, model.ItemCancelado, comandaID).Error
}
