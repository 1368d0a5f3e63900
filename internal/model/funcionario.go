package model

import (
	"time"

	"github.com/google/uuid"
)

// Papel values shared by Perfil and Funcionario.
// Papel: "admin" | "gerente" | "caixa" | "garcom" | "cozinha"
const (
	PapelAdmin   = "admin"
	PapelGerente = "gerente"
	PapelCaixa   = "caixa"
	PapelGarcom  = "garcom"
	PapelCozinha = "cozinha"
)

// Funcionario is a lightweight employee record authenticated via the
// simplified CPF + senha login path, distinct from the Perfil account system.
// The two identity kinds are never unified — see middleware.Claims.Tipo.
type Funcionario struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"not null"`
	// CPF is stored digits-only (11 chars), validated with check digits
	CPF       string `gorm:"column:cpf;uniqueIndex;not null;type:varchar(11)"`
	SenhaHash string `gorm:"not null"`
	Papel     string `gorm:"type:varchar(20);not null"`
	Ativo     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Funcionario) TableName() string { return "funcionarios" }
