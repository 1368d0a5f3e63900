package model

import (
	"time"

	"github.com/google/uuid"
)

// Mesa statuses. A mesa moves livre → ocupada when the first item of a
// comanda is lançado, ocupada → aguardando_pagamento when staff mark the
// comanda pronta para fechar, and back to livre when the venda is finalized.
const (
	MesaLivre               = "livre"
	MesaOcupada             = "ocupada"
	MesaReservada           = "reservada"
	MesaManutencao          = "manutencao"
	MesaAguardandoPagamento = "aguardando_pagamento"
)

// Mesa represents a physical restaurant table.
type Mesa struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero     int       `gorm:"uniqueIndex;not null"`
	Capacidade int       `gorm:"not null;default:4"`
	Status     string    `gorm:"type:varchar(30);not null;default:'livre'"`
	// Ativo is a soft-delete flag — mesas are never hard-deleted
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Mesa) TableName() string { return "mesas" }
