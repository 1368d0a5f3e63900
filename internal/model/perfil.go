package model

import (
	"time"

	"github.com/google/uuid"
)

// Perfil is a full account (restaurant owner / manager) with email login.
type Perfil struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	SenhaHash string    `gorm:"not null"`
	Papel     string    `gorm:"type:varchar(20);not null;default:'admin'"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Perfil) TableName() string { return "perfis" }
