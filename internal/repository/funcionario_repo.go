package repository

import (
	"context"

	"chefcomanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuncionarioRepository interface {
	Criar(ctx context.Context, f *model.Funcionario) error
	BuscarPorCPF(ctx context.Context, cpf string) (*model.Funcionario, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error)
	Listar(ctx context.Context, incluirInativos bool) ([]model.Funcionario, error)
	Atualizar(ctx context.Context, f *model.Funcionario) error
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type funcionarioRepo struct{ db *gorm.DB }

func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository { return &funcionarioRepo{db: db} }

func (r *funcionarioRepo) Criar(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *funcionarioRepo) BuscarPorCPF(ctx context.Context, cpf string) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Where("cpf = ? AND ativo = true", cpf).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *funcionarioRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *funcionarioRepo) Listar(ctx context.Context, incluirInativos bool) ([]model.Funcionario, error) {
	var funcionarios []model.Funcionario
	q := r.db.WithContext(ctx).Order("nome asc")
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	err := q.Find(&funcionarios).Error
	return funcionarios, err
}

func (r *funcionarioRepo) Atualizar(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *funcionarioRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Funcionario{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *funcionarioRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Funcionario{}).Where("id = ?", id).Update("ativo", true).Error
}
