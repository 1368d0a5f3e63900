package repository

import (
	"context"

	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PerfilRepository interface {
	Criar(ctx context.Context, p *model.Perfil) error
	BuscarPorEmail(ctx context.Context, email string) (*model.Perfil, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Perfil, error)
	Atualizar(ctx context.Context, p *model.Perfil) error
}

type perfilRepo struct{ db *gorm.DB }

func NewPerfilRepository(db *gorm.DB) PerfilRepository { return &perfilRepo{db: db} }

func (r *perfilRepo) Criar(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *perfilRepo) BuscarPorEmail(ctx context.Context, email string) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?) AND ativo = true", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perfilRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perfilRepo) Atualizar(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Save(p).Error
}
