package infra

import (
	"fmt"

	"chefcomanda/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Integration tests
// call this directly against a testcontainers Postgres.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Perfil{},
		&model.Funcionario{},
		&model.Categoria{},
		&model.Produto{},
		&model.Insumo{},
		&model.ProdutoInsumo{},
		&model.EntradaEstoque{},
		&model.SaidaEstoque{},
		&model.Mesa{},
		&model.Comanda{},
		&model.ComandaItem{},
		&model.Turno{},
		&model.Venda{},
		&model.Log{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle:
// the comanda number sequence and the partial indexes used by turno and
// the fiscal retry cron. Safe to re-run on an already-patched schema.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Sequential comanda numbers survive deletes and restarts.
		{"create comandas_numero_seq",
			`CREATE SEQUENCE IF NOT EXISTS comandas_numero_seq START 1`},

		// At most one active turno in the whole restaurant.
		{"unique active turno", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_turnos_unico_ativo') THEN
    CREATE UNIQUE INDEX idx_turnos_unico_ativo ON turnos (ativo) WHERE ativo;
  END IF;
END $$`},

		// Partial index for the NFC-e retry cron query.
		{"vendas pending retry index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_vendas_pending_retry') THEN
    CREATE INDEX idx_vendas_pending_retry
        ON vendas (next_retry_at)
        WHERE fiscal_status = 'pendente' AND next_retry_at IS NOT NULL;
  END IF;
END $$`},

		// At most one open comanda per mesa. The service looks the comanda up
		// before creating a new one, but two concurrent first lançamentos can
		// both miss; this index makes the second insert fail and roll back.
		{"unique open comanda per mesa", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_comandas_mesa_aberta') THEN
    CREATE UNIQUE INDEX idx_comandas_mesa_aberta
        ON comandas (mesa_id)
        WHERE status NOT IN ('fechada', 'cancelada');
  END IF;
END $$`},

		// Kitchen board query: items sent to the kitchen, still in flight.
		{"comanda_itens cozinha index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_comanda_itens_cozinha') THEN
    CREATE INDEX idx_comanda_itens_cozinha
        ON comanda_itens (status)
        WHERE enviado_cozinha AND status IN ('aguardando', 'preparando', 'pronto');
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
