package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"claim-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectAndCreateDB connects to the claim database, creating it and applying
// schema.sql when it does not exist yet.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	slog.Info("Connecting to PostgreSQL", "host", cfg.Host, "port", cfg.Port, "user", cfg.Username, "dbname", cfg.DBname)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err = defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)
		if _, err = defaultDB.Exec(createQuery); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		slog.Info("Database created", "dbname", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if !exists {
		if err := executeSchema(db); err != nil {
			// allow manual schema setup
			slog.Warn("Failed to execute schema.sql", "error", err)
		}
	}

	return db, nil
}

func executeSchema(db *sqlx.DB) error {
	schemaLocations := []string{
		"schema.sql",
		"/app/schema.sql",
		filepath.Join(os.Getenv("PWD"), "schema.sql"),
	}

	var schemaPath string
	for _, location := range schemaLocations {
		if _, err := os.Stat(location); err == nil {
			schemaPath = location
			break
		}
	}
	if schemaPath == "" {
		return fmt.Errorf("schema.sql not found in any expected locations: %v", schemaLocations)
	}

	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema.sql from %s: %w", schemaPath, err)
	}

	slog.Info("Executing schema", "path", schemaPath)

	successCount := 0
	for i, statement := range SplitStatements(string(schemaContent)) {
		if _, err := db.Exec(statement); err != nil {
			slog.Warn("Failed to execute schema statement", "index", i+1, "error", err,
				"statement", statement[:min(100, len(statement))])
			continue
		}
		successCount++
	}

	slog.Info("Schema execution completed", "statements", successCount)
	return nil
}

// SplitStatements splits a SQL script on semicolons, dropping blanks and
// comment-only chunks.
func SplitStatements(script string) []string {
	var statements []string
	for _, statement := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(statement, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if cleaned := strings.TrimSpace(strings.Join(lines, "\n")); cleaned != "" {
			statements = append(statements, cleaned)
		}
	}
	return statements
}

// RetryConnectOnFailed keeps reconnecting until the database answers a ping.
func RetryConnectOnFailed(waitAmount time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	for {
		if *db != nil {
			err := (*db).Ping()
			if err == nil {
				return
			}
			slog.Warn("Database ping failed, retrying connection", "error", err)
		}

		newDB, err := ConnectAndCreateDB(cfg)
		if err == nil {
			*db = newDB
			slog.Info("Database retry connection succeeded")
			return
		}
		slog.Error("Failed to reconnect database", "error", err, "next_retry", waitAmount)
		time.Sleep(waitAmount)
	}
}
