package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Migrate runs all database migrations
func (db *DB) Migrate() error {
	log.Info().Msg("Running database migrations")

	// Create migrations table if not exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	// Run migrations
	for _, migration := range migrationsFor(db.driver) {
		if migration.Version > currentVersion {
			log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

			if err := db.Transaction(func(tx *sql.Tx) error {
				// Execute migration SQL - split by semicolons and execute each statement
				// This ensures each statement is properly executed and errors are caught
				statements := splitSQLStatements(migration.SQL)
				for i, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return fmt.Errorf("migration %d statement %d failed: %w", migration.Version, i+1, err)
					}
				}

				// Record migration
				if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", migration.Version); err != nil {
					return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
				}

				return nil
			}); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	lines := strings.Split(sql, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Skip empty lines and comments
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		// Check if line ends with semicolon (statement complete)
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	// Handle any remaining content without trailing semicolon
	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

// migrationsFor renders the migration set for the active dialect. The
// auto-increment primary key syntax and the date column type differ between
// MySQL and SQLite; the rest of the DDL is shared. Dates are TEXT under
// SQLite so they scan back as the stored string; a DATETIME column would be
// converted to time.Time by the driver.
func migrationsFor(driver string) []migration {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	dt := "TEXT"
	if driver == "mysql" {
		pk = "INT PRIMARY KEY AUTO_INCREMENT"
		dt = "DATETIME"
	}

	return []migration{
		{
			Version: 1,
			Name:    "initial_schema",
			SQL: fmt.Sprintf(`
				-- Vehicle categories (reference data joined by veiculos)
				CREATE TABLE categorias (
					id_categoria %[1]s,
					nome VARCHAR(100) NOT NULL,
					preco_dia DECIMAL(10,2) NOT NULL DEFAULT 0
				);

				CREATE TABLE clientes (
					id_cliente %[1]s,
					nome VARCHAR(150) NOT NULL,
					email VARCHAR(150) NOT NULL,
					telefone VARCHAR(30),
					nif VARCHAR(20) NOT NULL,
					morada VARCHAR(255)
				);

				CREATE TABLE funcionarios (
					id_funcionario %[1]s,
					nome VARCHAR(150) NOT NULL,
					email VARCHAR(150) NOT NULL,
					cargo VARCHAR(100),
					telefone VARCHAR(30)
				);

				CREATE TABLE veiculos (
					id_veiculo %[1]s,
					marca VARCHAR(100) NOT NULL,
					modelo VARCHAR(100) NOT NULL,
					matricula VARCHAR(20) NOT NULL,
					ano INT NOT NULL,
					cor VARCHAR(50),
					quilometragem INT NOT NULL DEFAULT 0,
					estado VARCHAR(30) NOT NULL DEFAULT 'Disponivel',
					id_categoria INT,
					FOREIGN KEY (id_categoria) REFERENCES categorias(id_categoria)
				);

				CREATE TABLE reservas (
					id_reserva %[1]s,
					id_cliente INT NOT NULL,
					id_veiculo INT NOT NULL,
					id_funcionario INT NOT NULL,
					data_inicio %[2]s NOT NULL,
					data_fim %[2]s NOT NULL,
					preco_total DECIMAL(10,2) NOT NULL DEFAULT 0,
					estado VARCHAR(20) NOT NULL DEFAULT 'ativa',
					FOREIGN KEY (id_cliente) REFERENCES clientes(id_cliente) ON DELETE CASCADE,
					FOREIGN KEY (id_veiculo) REFERENCES veiculos(id_veiculo) ON DELETE CASCADE,
					FOREIGN KEY (id_funcionario) REFERENCES funcionarios(id_funcionario) ON DELETE CASCADE
				);

				CREATE TABLE manutencoes (
					id_manutencao %[1]s,
					id_veiculo INT NOT NULL,
					descricao TEXT NOT NULL,
					data_manutencao %[2]s NOT NULL,
					custo DECIMAL(10,2) NOT NULL DEFAULT 0,
					FOREIGN KEY (id_veiculo) REFERENCES veiculos(id_veiculo) ON DELETE CASCADE
				);

				-- Many-to-many favorites; the composite key is the identity
				CREATE TABLE clientes_favoritos (
					id_cliente INT NOT NULL,
					id_veiculo INT NOT NULL,
					PRIMARY KEY (id_cliente, id_veiculo),
					FOREIGN KEY (id_cliente) REFERENCES clientes(id_cliente) ON DELETE CASCADE,
					FOREIGN KEY (id_veiculo) REFERENCES veiculos(id_veiculo) ON DELETE CASCADE
				);

				-- Audit trail for blocked vehicle deletions
				CREATE TABLE logs_veiculos_delete (
					id_log %[1]s,
					id_veiculo INT NOT NULL,
					motivo VARCHAR(255) NOT NULL,
					criado_em TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);

				CREATE INDEX idx_reservas_cliente ON reservas(id_cliente);
				CREATE INDEX idx_reservas_veiculo ON reservas(id_veiculo);
				CREATE INDEX idx_reservas_funcionario ON reservas(id_funcionario);
				CREATE INDEX idx_manutencoes_veiculo ON manutencoes(id_veiculo);
			`, pk, dt),
		},
	}
}
