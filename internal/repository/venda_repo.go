package repository

import (
	"context"
	"time"

	"chefcomanda/internal/dto"
	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	CriarTx(tx *gorm.DB, v *model.Venda) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	BuscarPorComanda(ctx context.Context, comandaID uuid.UUID) (*model.Venda, error)
	Atualizar(ctx context.Context, v *model.Venda) error
	Listar(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	ListarPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Venda, error)
	// ListPendingRetries feeds the NFC-e retry cron
	ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Venda, error)
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) CriarTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Comanda.Itens.Produto").
		Preload("Comanda.Mesa").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) BuscarPorComanda(ctx context.Context, comandaID uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Where("comanda_id = ?", comandaID).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) Atualizar(ctx context.Context, v *model.Venda) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendaRepo) Listar(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.TurnoID != "" {
		q = q.Where("turno_id = ?", filter.TurnoID)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Comanda").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}

func (r *vendaRepo) ListarPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).Order("created_at ASC").Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Comanda.Itens.Produto").
		Where("fiscal_status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.FiscalPendente, before).
		Limit(limit).
		Find(&vendas).Error
	return vendas, err
}
