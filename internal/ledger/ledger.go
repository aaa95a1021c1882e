// Package ledger records payout descriptors for the external payer. It is
// an audit trail, not a payment system, and the server runs fine without it.
package ledger

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Ledger struct {
	conn *sql.DB
}

func Connect(dsn string) (*Ledger, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	log.Println("[Ledger] Connected to PostgreSQL")
	return &Ledger{conn: conn}, nil
}

func (l *Ledger) Close() error {
	return l.conn.Close()
}

func (l *Ledger) Ping() error {
	return l.conn.Ping()
}

func (l *Ledger) Migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	for _, entry := range entries {
		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		if _, err := l.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", entry.Name(), err)
		}
		log.Printf("[Ledger] Applied migration: %s\n", entry.Name())
	}
	return nil
}
