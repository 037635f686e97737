package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// Tables are listed parents first; each statement is CREATE TABLE IF NOT EXISTS.
var schemas = map[Dialect][]string{
	DialectMySQL: {
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS client (
			client_id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS part (
			part_id INT AUTO_INCREMENT PRIMARY KEY,
			client_id INT NOT NULL,
			part_name VARCHAR(255) NOT NULL,
			part_description TEXT NOT NULL,
			part_value VARCHAR(255) NULL,
			FOREIGN KEY (client_id) REFERENCES client(client_id)
		);`,
		`CREATE TABLE IF NOT EXISTS part_properties (
			property_id INT AUTO_INCREMENT PRIMARY KEY,
			part_id INT NOT NULL,
			property_name VARCHAR(255) NOT NULL,
			property_value VARCHAR(255) NOT NULL,
			FOREIGN KEY (part_id) REFERENCES part(part_id)
		);`,
	},
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS client (
			client_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			phone TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS part (
			part_id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL REFERENCES client(client_id),
			part_name TEXT NOT NULL,
			part_description TEXT NOT NULL,
			part_value TEXT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS part_properties (
			property_id INTEGER PRIMARY KEY AUTOINCREMENT,
			part_id INTEGER NOT NULL REFERENCES part(part_id),
			property_name TEXT NOT NULL,
			property_value TEXT NOT NULL
		);`,
	},
}

// AutoMigrate creates the users, client, part and part_properties tables if they do not exist.
// A failing statement is retried up to retries times, one second apart.
func AutoMigrate(ctx context.Context, retries int, dialect Dialect, db *sql.DB) error {
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	for _, query := range stmts {
		_, err := db.ExecContext(ctx, query)
		for i := 0; err != nil && i < retries; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(1 * time.Second):
			}
			_, err = db.ExecContext(ctx, query)
		}
		if err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}
	}
	return nil
}
