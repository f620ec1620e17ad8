package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chronopay-gw/internal/config"
	"chronopay-gw/internal/db"
	"chronopay-gw/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "./migrations", "directory holding *.sql migrations")
	flag.Parse()

	dataSource, appEnv, err := resolveDSN(os.Getenv("DB_URL"))
	if err != nil {
		logger.L().Fatal("failed to read environment", zap.Error(err))
	}
	logger.Init(appEnv)
	defer logger.Sync()

	conn, err := sql.Open("postgres", dataSource)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer conn.Close()

	if err := run(conn, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

// resolveDSN prefers an explicit DB_URL and falls back to the DB_* settings,
// which then must name a host.
func resolveDSN(dbURL string) (string, string, error) {
	cfg, err := config.Load()
	switch {
	case dbURL != "" && errors.Is(err, config.ErrMissingDBHost):
		return dbURL, cfg.AppEnv, nil
	case err != nil:
		return "", "", err
	case dbURL != "":
		return dbURL, cfg.AppEnv, nil
	}
	return db.BuildDSN(cfg), cfg.AppEnv, nil
}

func run(conn *sql.DB, mode, migrationsDir string) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return runMigrationsUp(conn, files)
	case "down":
		return runMigrationsDown(conn, files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up' or 'down')", mode)
	}
}

func runMigrationsUp(conn *sql.DB, files []string) error {
	log := logger.L()
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		err := conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			log.Info("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		if err := applyInTx(conn, extractMigrationPart(string(content), "Up"),
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("migration failed (%s): %w", version, err)
		}
	}
	log.Info("all new migrations applied")
	return nil
}

func runMigrationsDown(conn *sql.DB, files []string) error {
	log := logger.L()

	var lastVersion string
	err := conn.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&lastVersion)
	if err == sql.ErrNoRows {
		log.Warn("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	filePath := ""
	for _, f := range files {
		if filepath.Base(f) == lastVersion {
			filePath = f
			break
		}
	}
	if filePath == "" {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	log.Info("rolling back migration", zap.String("version", lastVersion))
	if err := applyInTx(conn, extractMigrationPart(string(content), "Down"),
		`DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
		return fmt.Errorf("rollback failed (%s): %w", lastVersion, err)
	}

	log.Info("rollback successful", zap.String("version", lastVersion))
	return nil
}

// applyInTx runs the migration body and its bookkeeping statement atomically.
func applyInTx(conn *sql.DB, body, record, version string) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(body); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(record, version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	return tx.Commit()
}

func extractMigrationPart(content string, section string) string {
	lines := strings.Split(content, "\n")
	var part strings.Builder
	var inPart bool

	for _, line := range lines {
		if strings.Contains(line, "-- +migrate "+section) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
