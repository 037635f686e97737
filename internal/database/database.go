package database

import (
	"client-service/internal/config"
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

const retryInterval = 3 * time.Second

// DSN builds the go-sql-driver/mysql data source name for cfg.
func DSN(cfg *config.Config) string {
	c := mysql.NewConfig()
	c.User = cfg.DBUser
	c.Passwd = cfg.DBPass
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	c.DBName = cfg.DBName
	c.ParseTime = true
	return c.FormatDSN()
}

// Connect opens the MySQL pool described by cfg and waits until it answers a ping,
// trying up to cfg.DBConnectRetries times.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := connect(ctx, "mysql", DSN(cfg), cfg.DBConnectRetries, retryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB %s at %s:%s: %w", cfg.DBName, cfg.DBHost, cfg.DBPort, err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	return db, nil
}

func connect(ctx context.Context, driver, dsn string, retries int, wait time.Duration) (*sql.DB, error) {
	if retries < 1 {
		retries = 1
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	for i := 0; i < retries; i++ {
		if err = db.PingContext(ctx); err == nil {
			log.Info().Str("driver", driver).Msg("Connected to DB")
			return db, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to DB")
		if i == retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	db.Close()
	return nil, fmt.Errorf("after %d attempts: %w", retries, err)
}
