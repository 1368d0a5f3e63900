package repository

import (
	"context"

	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnoRepository interface {
	Criar(ctx context.Context, t *model.Turno) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	// BuscarAtivo returns the single active turno, or gorm.ErrRecordNotFound
	BuscarAtivo(ctx context.Context) (*model.Turno, error)
	// ContarAtivos exists to assert the at-most-one-active invariant
	ContarAtivos(ctx context.Context) (int64, error)
	Atualizar(ctx context.Context, t *model.Turno) error
	Historico(ctx context.Context, page, limit int) ([]model.Turno, int64, error)
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Criar(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("Vendas").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) BuscarAtivo(ctx context.Context) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Where("ativo = true").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) ContarAtivos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Turno{}).Where("ativo = true").Count(&count).Error
	return count, err
}

func (r *turnoRepo) Atualizar(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) Historico(ctx context.Context, page, limit int) ([]model.Turno, int64, error) {
	var turnos []model.Turno
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Turno{}).Where("ativo = false")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("aberto_em DESC").Offset((page - 1) * limit).Limit(limit).Find(&turnos).Error
	return turnos, total, err
}
