package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var tables = []struct {
	name string
	ddl  string
}{
	{
		name: "users",
		ddl: `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			email         VARCHAR(255) NOT NULL,
			mobile        VARCHAR(20)  NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role          VARCHAR(32)  NOT NULL DEFAULT 'user',
			created_at    DATETIME     NOT NULL,
			updated_at    DATETIME     NOT NULL,
			UNIQUE KEY email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	{
		name: "todos",
		ddl: `
		CREATE TABLE IF NOT EXISTS todos (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			description TEXT         NOT NULL,
			completed   TINYINT(1)   NOT NULL DEFAULT 0,
			created_by  BIGINT UNSIGNED NOT NULL,
			created_at  DATETIME     NOT NULL,
			updated_at  DATETIME     NOT NULL,
			KEY idx_todos_created_by (created_by)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
}

// Migrate creates the tables the service needs when they are missing.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, t := range tables {
		ok, err := HasTable(ctx, conn, t.name)
		if err != nil {
			return fmt.Errorf("check table %s: %w", t.name, err)
		}
		if ok {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[DB] created table %s", t.name)
	}
	return nil
}
