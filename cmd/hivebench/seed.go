package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// openDatabase establishes the sqlite3 connection scenarios seed their
// datasets from and persist their reports to, following this module's
// open-then-defer-close pattern for one-shot setup connections.
func openDatabase(path string) *sql.DB {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		panic("hivebench: failed to open database " + path + ": " + err.Error())
	}
	return db
}

func createSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS seed_data (
		scenario TEXT NOT NULL,
		seq      INTEGER NOT NULL,
		value    INTEGER NOT NULL
	)`); err != nil {
		return err
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario    TEXT NOT NULL,
		size        INTEGER NOT NULL,
		erased      INTEGER NOT NULL,
		final_size  INTEGER NOT NULL,
		capacity    INTEGER NOT NULL,
		block_count INTEGER NOT NULL,
		elapsed_ns  INTEGER NOT NULL
	)`)
	return err
}

// seedDataset generates n deterministic pseudo-random values for
// scenario and persists them, replacing any prior seed for that
// scenario name.
func seedDataset(db *sql.DB, scenario string, n int, rng *deterministicRNG) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM seed_data WHERE scenario = ?`, scenario); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO seed_data (scenario, seq, value) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(scenario, i, int64(rng.next())); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// loadDataset reads a previously seeded dataset back in seq order,
// mirroring main.go's load-then-close pattern for one-shot setup
// connections.
func loadDataset(db *sql.DB, scenario string) ([]int64, error) {
	rows, err := db.Query(`SELECT value FROM seed_data WHERE scenario = ? ORDER BY seq`, scenario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func persistRun(db *sql.DB, r report) error {
	_, err := db.Exec(`INSERT INTO runs (scenario, size, erased, final_size, capacity, block_count, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Size, r.Erased, r.FinalSize, r.Capacity, r.BlockCount, r.ElapsedNS)
	return err
}
