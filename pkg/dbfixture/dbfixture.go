// Package dbfixture provides a MySQL-backed fixture for scope tests.
//
//	var _ = scope.FixtureCtor("usersTable", dbfixture.Open, func(db *dbfixture.DB) {
//		var n int
//		assert.True(db.QueryRow("SELECT 1").Scan(&n) == nil)
//	})
//
// Connection settings come from a .env file in the working directory and the
// environment (DB_HOST, DB_PORT, DB_USERNAME, DB_PASSWORD, DB_DATABASE,
// DB_DATABASE_PREFIX). The fixture is closed when the test finishes.
package dbfixture

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"scope/internal/logging"
)

// EnvFile is the dotenv file read by LoadSettings
const EnvFile = ".env"

// PingTimeout bounds how long Open waits for the server
var PingTimeout = 5 * time.Second

// Settings describes a MySQL connection
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// LoadSettings reads envFile (a missing file is fine) and the environment.
// Variables already set in the environment win over the file.
func LoadSettings(envFile string) Settings {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logging.Warn("dbfixture", "could not read %s: %v", envFile, err)
	}

	s := Settings{
		Host:     getenv("DB_HOST", "127.0.0.1"),
		Port:     getenv("DB_PORT", "3306"),
		User:     getenv("DB_USERNAME", "root"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_DATABASE"),
	}
	if s.Database == "" {
		s.Database = DatabaseName(getenv("DB_DATABASE_PREFIX", "testing"), os.Getpid())
	}
	return s
}

// DatabaseName returns the database used by one test process
func DatabaseName(prefix string, id int) string {
	return fmt.Sprintf("%s_%d", prefix, id)
}

// DSN returns the driver connection string. Without a database it connects
// to the server only.
func (s Settings) DSN(withDatabase bool) string {
	cfg := mysql.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(s.Host, s.Port)
	cfg.ParseTime = true
	if withDatabase {
		cfg.DBName = s.Database
	}
	return cfg.FormatDSN()
}

// DB is an open connection to the test database
type DB struct {
	*sql.DB
	Settings Settings
}

// Open is a fixture constructor: it creates the test database when missing
// and connects to it.
func Open() (*DB, error) {
	return OpenWith(LoadSettings(EnvFile))
}

// OpenWith is Open with explicit settings
func OpenWith(s Settings) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	if err := EnsureDatabase(ctx, s); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", s.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", s.Database, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", s.Database, err)
	}
	logging.Debug("dbfixture", "connected to %s on %s:%s", s.Database, s.Host, s.Port)
	return &DB{DB: db, Settings: s}, nil
}

// EnsureDatabase creates s.Database on the server unless it exists
func EnsureDatabase(ctx context.Context, s Settings) error {
	if !ValidDatabaseName(s.Database) {
		return fmt.Errorf("invalid database name: %q", s.Database)
	}

	server, err := sql.Open("mysql", s.DSN(false))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()

	if err := server.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	if err := server.QueryRowContext(ctx, query, s.Database).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", s.Database, err)
	}
	if exists {
		return nil
	}
	if _, err := server.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.Database)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", s.Database, err)
	}
	return nil
}

// ValidDatabaseName rejects names that could escape the quoted identifier
func ValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	upper := strings.ToUpper(name)
	for _, bad := range []string{"`", "'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"} {
		if strings.Contains(upper, bad) {
			return false
		}
	}
	return true
}

// Close closes the connection; scope calls it as the fixture teardown
func (d *DB) Close() error {
	return d.DB.Close()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
