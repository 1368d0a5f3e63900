package repository

import (
	"context"

	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MesaRepository interface {
	Criar(ctx context.Context, m *model.Mesa) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Mesa, error)
	BuscarPorNumero(ctx context.Context, numero int) (*model.Mesa, error)
	Listar(ctx context.Context, incluirInativas bool) ([]model.Mesa, error)
	Atualizar(ctx context.Context, m *model.Mesa) error
	AtualizarStatus(ctx context.Context, id uuid.UUID, status string) error
	// AtualizarStatusTx is used inside lifecycle transactions
	AtualizarStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Criar(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mesaRepo) BuscarPorNumero(ctx context.Context, numero int) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).Where("numero = ? AND ativo = true", numero).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mesaRepo) Listar(ctx context.Context, incluirInativas bool) ([]model.Mesa, error) {
	var mesas []model.Mesa
	q := r.db.WithContext(ctx).Order("numero asc")
	if !incluirInativas {
		q = q.Where("ativo = true")
	}
	err := q.Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) Atualizar(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mesaRepo) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("status", status).Error
}

func (r *mesaRepo) AtualizarStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Mesa{}).Where("id = ?", id).Update("status", status).Error
}

func (r *mesaRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *mesaRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("ativo", true).Error
}
