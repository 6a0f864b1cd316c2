package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	sqlite "modernc.org/sqlite"
)

// SQLite extended result codes for primary key / unique violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// ErrDuplicate is returned when an insert or update violates a unique or
// primary key constraint.
var ErrDuplicate = errors.New("duplicate key")

// Config describes the store connection. Driver selects the dialect:
// "mysql" connects over TCP with the Host/User/Password/Name credentials,
// "sqlite" opens the file at Path.
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

// DB wraps the database connection shared by all resource queries.
type DB struct {
	*sql.DB
	driver string
	mu     sync.Mutex
}

// New opens and verifies the store connection.
func New(cfg Config) (*DB, error) {
	var driverName, dsn string

	switch cfg.Driver {
	case "", "mysql":
		driverName = "mysql"
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.DBName = cfg.Name
		dsn = mc.FormatDSN()
	case "sqlite":
		driverName = "sqlite"
		// WAL mode allows concurrent reads while writes are serialized.
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	log.Debug().Str("driver", driverName).Msg("Database connection established")

	return &DB{
		DB:     db,
		driver: driverName,
	}, nil
}

// Driver returns the active driver name ("mysql" or "sqlite").
func (db *DB) Driver() string {
	return db.driver
}

// Transaction wraps a function in a database transaction.
func (db *DB) Transaction(fn func(*sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isDuplicateKey reports whether err is a unique/primary key violation from
// either supported driver.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqliteConstraintPrimaryKey || code == sqliteConstraintUnique
	}
	return false
}
