package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"spotify-behavior-analysis/models"
)

// PostgresWriter persists cleaned user records to PostgreSQL. The backend
// is optional: the pipeline runs fully without it.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              SERIAL PRIMARY KEY,
			age_bracket     VARCHAR(20)   NOT NULL,
			age_numeric     NUMERIC(5,1)  NOT NULL DEFAULT 0,
			gender          VARCHAR(40)   NOT NULL DEFAULT '',
			usage_period    TEXT          NOT NULL DEFAULT '',
			usage_months    NUMERIC(5,1)  NOT NULL DEFAULT 0,
			time_slot       VARCHAR(40)   NOT NULL DEFAULT '',
			fav_genre       VARCHAR(80)   NOT NULL DEFAULT '',
			recc_rating     SMALLINT      NOT NULL DEFAULT 0,
			pod_listen_freq VARCHAR(60)   NOT NULL DEFAULT '',
			pod_frequency   SMALLINT      NOT NULL DEFAULT 0,
			premium_plan    TEXT          NOT NULL DEFAULT '',
			listening_time  NUMERIC(9,2)  NOT NULL DEFAULT 0,
			streams         INTEGER       NOT NULL DEFAULT 0,
			skips           INTEGER       NOT NULL DEFAULT 0,
			distinct_tracks INTEGER       NOT NULL DEFAULT 0,
			skip_rate       NUMERIC(10,6) NOT NULL DEFAULT 0,
			diversity_score NUMERIC(10,6) NOT NULL DEFAULT 0,
			bot_like        SMALLINT      NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_users_bot_like  ON users(bot_like);
		CREATE INDEX IF NOT EXISTS idx_users_fav_genre ON users(fav_genre);
		CREATE INDEX IF NOT EXISTS idx_users_streams   ON users(streams);
	`)
	return err
}

// Clear deletes all existing users from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM users")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts all cleaned records, clearing old data first so the
// table always mirrors the latest snapshot.
func (pw *PostgresWriter) Write(records []*models.UserRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

const userCols = 18

func (pw *PostgresWriter) insertBatch(batch []*models.UserRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*userCols)

	for idx, r := range batch {
		base := idx * userCols
		ph := make([]string, userCols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			r.Age, r.AgeNumeric, r.Gender,
			r.UsagePeriod, r.UsageMonths,
			r.TimeSlot, r.FavGenre, r.ReccRating,
			r.PodListenFreq, r.PodFrequency, r.PremiumPlan,
			r.ListeningTime, r.Streams, r.Skips, r.DistinctTracks,
			r.SkipRate, r.DiversityScore, r.BotLike)
	}

	query := fmt.Sprintf(`
		INSERT INTO users (
			age_bracket, age_numeric, gender,
			usage_period, usage_months,
			time_slot, fav_genre, recc_rating,
			pod_listen_freq, pod_frequency, premium_plan,
			listening_time, streams, skips, distinct_tracks,
			skip_rate, diversity_score, bot_like
		)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored records for the insight and modeling stages.
func (pw *PostgresWriter) FetchAll() ([]*models.UserRecord, error) {
	rows, err := pw.db.Query(`
		SELECT age_bracket, age_numeric, gender,
		       usage_period, usage_months,
		       time_slot, fav_genre, recc_rating,
		       pod_listen_freq, pod_frequency, premium_plan,
		       listening_time, streams, skips, distinct_tracks,
		       skip_rate, diversity_score, bot_like
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.UserRecord
	for rows.Next() {
		r := &models.UserRecord{}
		if err := rows.Scan(
			&r.Age, &r.AgeNumeric, &r.Gender,
			&r.UsagePeriod, &r.UsageMonths,
			&r.TimeSlot, &r.FavGenre, &r.ReccRating,
			&r.PodListenFreq, &r.PodFrequency, &r.PremiumPlan,
			&r.ListeningTime, &r.Streams, &r.Skips, &r.DistinctTracks,
			&r.SkipRate, &r.DiversityScore, &r.BotLike,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
