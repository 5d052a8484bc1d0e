// Package db opens and migrates the manna database.
package db

import (
	"context"
	"database/sql"
	"fmt"

	sqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM connection to a SQLite database at path. Use
// ":memory:" for an in-memory database (tests).
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	return db, nil
}

// MySQLDSN builds a MySQL DSN for the optional server backend.
func MySQLDSN(user, password, host string, port int, database string) string {
	cfg := sqlmysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// OpenMySQL opens a GORM connection to a MySQL server, for deployments
// where several processes (webhook workers, scheduler) share one store.
func OpenMySQL(user, password, host string, port int, database string) (*gorm.DB, error) {
	dsn := MySQLDSN(user, password, host, port, database)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", host, port, database, err)
	}
	return db, nil
}

// PingMySQL checks that the MySQL server is reachable before the full
// GORM connection is set up.
func PingMySQL(ctx context.Context, user, password, host string, port int, database string) error {
	conn, err := sql.Open("mysql", MySQLDSN(user, password, host, port, database))
	if err != nil {
		return fmt.Errorf("db: open mysql: %w", err)
	}
	defer conn.Close()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("db: ping %s:%d: %w", host, port, err)
	}
	return nil
}
