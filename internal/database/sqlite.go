package database

import (
	"CarmartScraper/internal/models"
	"CarmartScraper/utils"
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DBRepository stores crawl snapshots in SQLite. Each run owns one row in
// runs and its current set of cars; every Save replaces that set.
type DBRepository struct {
	DB *sql.DB
}

// InitDB opens (or creates) the database at filepath and its tables.
func InitDB(filepath string) (*DBRepository, error) {
	db, err := sql.Open("sqlite", filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	createRunsTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		"id" TEXT NOT NULL PRIMARY KEY,
		"day" TEXT,
		"started_at" TEXT,
		"updated_at" TEXT,
		"record_count" INTEGER DEFAULT 0
	);`
	if _, err = db.Exec(createRunsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating runs table: %w", err)
	}

	createCarsTableSQL := `
	CREATE TABLE IF NOT EXISTS cars (
		"run_id" TEXT NOT NULL,
		"position" INTEGER NOT NULL,
		"url" TEXT NOT NULL,
		"scraping_date" TEXT NOT NULL,
		"title" TEXT,
		"price" TEXT,
		"registration_date" TEXT,
		"depreciation" TEXT,
		"mileage" TEXT,
		"transmission" TEXT,
		"engine_cap" TEXT,
		"road_tax" TEXT,
		"power" TEXT,
		"type_of_vehicle" TEXT,
		"category" TEXT,
		"coe" TEXT,
		"no_of_owners" TEXT,
		"availability" TEXT,
		"price_value" REAL,
		"mileage_km" INTEGER,
		PRIMARY KEY ("run_id", "position")
	);`
	if _, err = db.Exec(createCarsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating cars table: %w", err)
	}

	log.Println("Database and tables initialized successfully.")
	return &DBRepository{DB: db}, nil
}

// Close closes the database connection.
func (repo *DBRepository) Close() {
	repo.DB.Close()
}

var insertCarSQL = fmt.Sprintf(
	`INSERT INTO cars (run_id, position, %s, price_value, mileage_km) VALUES (?, ?, %s?, ?)`,
	strings.Join(models.CarColumns, ", "),
	strings.Repeat("?, ", len(models.CarColumns)),
)

var selectCarsSQL = fmt.Sprintf(
	`SELECT %s FROM cars WHERE run_id = ? ORDER BY position LIMIT ? OFFSET ?`,
	strings.Join(models.CarColumns, ", "),
)

// Save replaces the stored snapshot of run with records.
func (repo *DBRepository) Save(ctx context.Context, run models.Run, records []models.CarRecord) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, day, started_at, updated_at, record_count) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		updated_at=excluded.updated_at,
		record_count=excluded.record_count;`,
		run.ID.String(), run.Key(), run.StartedAt.UTC().Format(time.RFC3339), now, len(records),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cars WHERE run_id = ?`, run.ID.String()); err != nil {
		return fmt.Errorf("failed to clear snapshot of run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertCarSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		args := append([]interface{}{run.ID.String(), i}, rec.Values()...)
		args = append(args, priceValue(rec.Price), mileageKm(rec.Mileage))
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to save car %s: %w", rec.URL, err)
		}
	}

	return tx.Commit()
}

func priceValue(price models.NullString) sql.NullFloat64 {
	if !price.Valid {
		return sql.NullFloat64{}
	}
	v := utils.ParsePrice(price.String)
	return sql.NullFloat64{Float64: v, Valid: v > 0}
}

func mileageKm(mileage models.NullString) sql.NullInt64 {
	if !mileage.Valid {
		return sql.NullInt64{}
	}
	km, ok := utils.ParseMileage(mileage.String)
	return sql.NullInt64{Int64: km, Valid: ok}
}

func scanRun(row interface{ Scan(...interface{}) error }) (*models.RunSummary, error) {
	var r models.RunSummary
	if err := row.Scan(&r.ID, &r.Day, &r.StartedAt, &r.UpdatedAt, &r.RecordCount); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRuns lists stored runs, newest first.
func (repo *DBRepository) GetRuns() ([]models.RunSummary, error) {
	rows, err := repo.DB.Query(`SELECT id, day, started_at, updated_at, record_count FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			log.Printf("Error scanning run row: %v", err)
			continue
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun returns one run, or sql.ErrNoRows.
func (repo *DBRepository) GetRun(id string) (*models.RunSummary, error) {
	return scanRun(repo.DB.QueryRow(`SELECT id, day, started_at, updated_at, record_count FROM runs WHERE id = ?`, id))
}

// LatestRun returns the most recently started run, or sql.ErrNoRows.
func (repo *DBRepository) LatestRun() (*models.RunSummary, error) {
	return scanRun(repo.DB.QueryRow(`SELECT id, day, started_at, updated_at, record_count FROM runs ORDER BY started_at DESC LIMIT 1`))
}

// GetCars reads a page of a run's snapshot in crawl order.
func (repo *DBRepository) GetCars(filters models.CarFilters) ([]models.CarRecord, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := repo.DB.Query(selectCarsSQL, filters.RunID, limit, filters.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to execute cars query: %w", err)
	}
	defer rows.Close()

	cars := []models.CarRecord{}
	for rows.Next() {
		var c models.CarRecord
		if err := rows.Scan(c.ScanDest()...); err != nil {
			log.Printf("Error scanning car row: %v", err)
			continue
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// CountCars returns the number of cars stored for a run.
func (repo *DBRepository) CountCars(runID string) (int, error) {
	var count int
	err := repo.DB.QueryRow(`SELECT COUNT(*) FROM cars WHERE run_id = ?`, runID).Scan(&count)
	return count, err
}
