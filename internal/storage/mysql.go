package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&multiStatements=true&clientFoundRows=true",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}

func NewDB(config Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	return db, nil
}

// EnsureDatabase creates the application database through a server-level
// connection when it does not exist yet.
func EnsureDatabase(config Config) error {
	name := config.DBName
	if strings.ContainsAny(name, "`;' ") || name == "" {
		return fmt.Errorf("invalid database name %q", name)
	}
	config.DBName = ""
	rootDb, err := NewDB(config)
	if err != nil {
		return err
	}
	defer rootDb.Close()

	if _, err := rootDb.Exec("CREATE DATABASE IF NOT EXISTS `" + name + "`"); err != nil {
		return fmt.Errorf("error creating database: %v", err)
	}
	return nil
}

// RunMigrations applies every embedded *.up.sql file that schema_migrations
// does not list yet, in file name order.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version INT PRIMARY KEY,
            applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            dirty BOOLEAN NOT NULL DEFAULT FALSE
        )
    `)
	if err != nil {
		return fmt.Errorf("error creating migrations table: %v", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version, dirty FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("error reading migrations table: %v", err)
	}
	for rows.Next() {
		var version int
		var dirty bool
		if err := rows.Scan(&version, &dirty); err != nil {
			rows.Close()
			return fmt.Errorf("error reading migrations table: %v", err)
		}
		if dirty {
			rows.Close()
			return fmt.Errorf("migration %d is dirty, fix it manually", version)
		}
		applied[version] = true
	}
	rows.Close()

	files, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations directory: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		name := strings.TrimPrefix(file, "migrations/")

		// Extract version number from filename
		var version int
		if _, err := fmt.Sscanf(name, "%d", &version); err != nil {
			return fmt.Errorf("migration %s has no version prefix", name)
		}
		if applied[version] {
			continue
		}

		content, err := migrationFiles.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading migration file %s: %v", name, err)
		}

		// Mark migration as dirty before executing
		if _, err := db.Exec("INSERT INTO schema_migrations (version, dirty) VALUES (?, true)", version); err != nil {
			return fmt.Errorf("error marking migration as dirty %s: %v", name, err)
		}

		// MySQL commits DDL implicitly, so a failure leaves the row dirty
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("error executing migration %s: %v", name, err)
		}

		if _, err := db.Exec("UPDATE schema_migrations SET dirty = false WHERE version = ?", version); err != nil {
			return fmt.Errorf("error marking migration as clean %s: %v", name, err)
		}

		logger.Info("applied migration", zap.String("file", name))
	}

	return nil
}
