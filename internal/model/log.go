package model

import (
	"time"

	"github.com/google/uuid"
)

// Log is an audit trail row. Written asynchronously by the auditoria worker —
// request paths never block on audit persistence.
type Log struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Acao    string    `gorm:"not null;index"` // e.g. "comanda.item_adicionado", "venda.finalizada"
	Recurso string    `gorm:"not null"`       // collection name
	// Actor is a dual identity: at most one of PerfilID / FuncionarioID is set
	PerfilID      *uuid.UUID `gorm:"type:uuid;index"`
	FuncionarioID *uuid.UUID `gorm:"type:uuid;index"`
	Detalhes      *string    `gorm:"type:text"`
	CreatedAt     time.Time
}

func (Log) TableName() string { return "logs" }
