package repository

import (
	"context"

	"chefcomanda/internal/model"

	"gorm.io/gorm"
)

// LogRepository persists audit rows. Only the auditoria worker writes here.
type LogRepository interface {
	Criar(ctx context.Context, l *model.Log) error
	Listar(ctx context.Context, recurso string, page, limit int) ([]model.Log, int64, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Criar(ctx context.Context, l *model.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) Listar(ctx context.Context, recurso string, page, limit int) ([]model.Log, int64, error) {
	var logs []model.Log
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Log{})
	if recurso != "" {
		q = q.Where("recurso = ?", recurso)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&logs).Error
	return logs, total, err
}
