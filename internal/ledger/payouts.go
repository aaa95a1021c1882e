package ledger

import (
	"fmt"
	"log"
	"time"
)

type PayoutRecord struct {
	ID        int64
	PlayerID  string
	Wallet    string
	Amount    float64
	Round     int
	CreatedAt time.Time
}

func (l *Ledger) RecordPayout(rec PayoutRecord) error {
	_, err := l.conn.Exec(`
		INSERT INTO payouts (player_id, wallet, amount, round)
		VALUES ($1, $2, $3, $4)
	`, rec.PlayerID, rec.Wallet, rec.Amount, rec.Round)
	if err != nil {
		return fmt.Errorf("recording payout: %w", err)
	}
	return nil
}

func (l *Ledger) BatchRecordPayouts(recs []PayoutRecord) error {
	tx, err := l.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO payouts (player_id, wallet, amount, round)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(rec.PlayerID, rec.Wallet, rec.Amount, rec.Round); err != nil {
			return fmt.Errorf("recording payout in batch: %w", err)
		}
	}

	return tx.Commit()
}

func (l *Ledger) PayoutsForPlayer(playerID string) ([]PayoutRecord, error) {
	rows, err := l.conn.Query(`
		SELECT id, player_id, wallet, amount, round, created_at
		FROM payouts WHERE player_id = $1 ORDER BY created_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying payouts: %w", err)
	}
	defer rows.Close()

	var recs []PayoutRecord
	for rows.Next() {
		var rec PayoutRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &rec.Wallet, &rec.Amount, &rec.Round, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payout: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (l *Ledger) TotalPaid() (float64, error) {
	var total float64
	err := l.conn.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payouts`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing payouts: %w", err)
	}
	return total, nil
}

// BatchWriter drains a payout buffer into the ledger, flushing every 500ms
// or every 50 records, whichever comes first. Run it in its own goroutine.
func BatchWriter(l *Ledger, buffer chan PayoutRecord) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]PayoutRecord, 0, 50)

	for {
		select {
		case rec, ok := <-buffer:
			if !ok {
				if len(batch) > 0 {
					if err := l.BatchRecordPayouts(batch); err != nil {
						log.Printf("[Ledger] BatchRecordPayouts error: %v\n", err)
					}
				}
				return
			}
			batch = append(batch, rec)
			if len(batch) >= 50 {
				if err := l.BatchRecordPayouts(batch); err != nil {
					log.Printf("[Ledger] BatchRecordPayouts error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := l.BatchRecordPayouts(batch); err != nil {
					log.Printf("[Ledger] BatchRecordPayouts error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
