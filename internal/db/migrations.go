package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Colunas de status são TEXT, não ENUM do Postgres: coleções importadas do
// sistema antigo carregam o vocabulário legado (planejada, em_andamento,
// concluida, cancelada), aceito na leitura e normalizado na aplicação. O
// backfill abaixo converte o que já estiver gravado.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(32),
		role VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'ativo',
		password_hash TEXT NOT NULL,
		photo_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_role ON employees (role);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id VARCHAR(64) PRIMARY KEY,
		plate VARCHAR(16) NOT NULL UNIQUE,
		model VARCHAR(128),
		year INTEGER,
		mileage_km DOUBLE PRECISION,
		status VARCHAR(32) NOT NULL DEFAULT 'disponivel',
		driver_id VARCHAR(64),
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trucks_driver_id ON trucks (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trucks_status ON trucks (status);`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id VARCHAR(64) PRIMARY KEY,
		tracking_code VARCHAR(32) NOT NULL UNIQUE,
		truck_id VARCHAR(64),
		driver_id VARCHAR(64),
		employee_id VARCHAR(64),
		status VARCHAR(32) NOT NULL DEFAULT 'pendente',
		scheduled_date TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ,
		customer_name VARCHAR(255),
		customer_document VARCHAR(32),
		customer_phone VARCHAR(32),
		origin_city VARCHAR(128),
		origin_state VARCHAR(8),
		destination_city VARCHAR(128),
		destination_state VARCHAR(8),
		cargo_description TEXT,
		cargo_weight_kg DOUBLE PRECISION,
		payment_method VARCHAR(32),
		payment_value DOUBLE PRECISION,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_driver_id ON deliveries (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_employee_id ON deliveries (employee_id);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_status ON deliveries (status);`,
	`CREATE TABLE IF NOT EXISTS routes (
		id VARCHAR(64) PRIMARY KEY,
		code VARCHAR(32) NOT NULL UNIQUE,
		truck_id VARCHAR(64),
		driver_id VARCHAR(64),
		employee_id VARCHAR(64),
		status VARCHAR(32) NOT NULL DEFAULT 'pendente',
		assigned_drivers JSONB,
		origin_city VARCHAR(128),
		origin_state VARCHAR(8),
		destinations JSONB,
		scheduled_date TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_driver_id ON routes (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_truck_id ON routes (truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_status ON routes (status);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id VARCHAR(64) PRIMARY KEY,
		type VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		priority VARCHAR(16) NOT NULL DEFAULT 'normal',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		related_id VARCHAR(64),
		related_type VARCHAR(16),
		target_employee_id VARCHAR(64) NOT NULL,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications (target_employee_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS employee_messages (
		id VARCHAR(64) PRIMARY KEY,
		from_employee_id VARCHAR(64) NOT NULL,
		to_employee_id VARCHAR(64) NOT NULL,
		subject VARCHAR(255),
		body TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_employee_messages_to ON employee_messages (to_employee_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		scope VARCHAR(16) NOT NULL,
		"user" VARCHAR(255) NOT NULL,
		action VARCHAR(64) NOT NULL,
		description TEXT,
		type VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_scope ON audit_logs (scope, id);`,
	`CREATE TABLE IF NOT EXISTS access_requests (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32),
		requested_role VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pendente',
		admin_response TEXT,
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_access_requests_status ON access_requests (status);`,
	// Backfill do vocabulário legado gravado por versões antigas do painel.
	`UPDATE deliveries SET status = 'pendente' WHERE status = 'planejada';`,
	`UPDATE deliveries SET status = 'em_percurso' WHERE status = 'em_andamento';`,
	`UPDATE deliveries SET status = 'entregue' WHERE status IN ('concluida', 'cancelada');`,
	`UPDATE routes SET status = 'pendente' WHERE status = 'planejada';`,
	`UPDATE routes SET status = 'em_percurso' WHERE status = 'em_andamento';`,
	`UPDATE routes SET status = 'entregue' WHERE status IN ('concluida', 'cancelada');`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_trucks_updated_at') THEN
			CREATE TRIGGER trg_trucks_updated_at
				BEFORE UPDATE ON trucks
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_deliveries_updated_at') THEN
			CREATE TRIGGER trg_deliveries_updated_at
				BEFORE UPDATE ON deliveries
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_routes_updated_at') THEN
			CREATE TRIGGER trg_routes_updated_at
				BEFORE UPDATE ON routes
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
