package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"spotify-behavior-analysis/models"
)

// Header is the cleaned-dataset column order: the raw columns followed by
// the engineered ones. Exported so readers of the persisted file can line
// up against it.
var Header = []string{
	"age", "age_numeric", "gender",
	"spotify_usage_period", "usage_months",
	"music_time_slot", "fav_music_genre", "music_recc_rating",
	"pod_lis_frequency", "pod_frequency",
	"fav_pod_genre", "preffered_pod_format", "pod_host_preference",
	"preffered_pod_duration", "preffered_premium_plan",
	"listening_time", "streams", "skips", "distinct_tracks",
	"skip_rate", "diversity_score", "bot_like",
}

// CSVWriter persists the cleaned dataset to a CSV file. It never touches
// the input file; the output is created fresh (directories included).
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends all cleaned records to the file. Floats use the shortest
// exact representation so a round-trip read reproduces identical values.
func (c *CSVWriter) Write(records []*models.UserRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.Age,
			formatFloat(r.AgeNumeric),
			r.Gender,
			r.UsagePeriod,
			formatFloat(r.UsageMonths),
			r.TimeSlot,
			r.FavGenre,
			strconv.Itoa(r.ReccRating),
			r.PodListenFreq,
			strconv.Itoa(r.PodFrequency),
			r.PodGenre,
			r.PodFormat,
			r.PodHost,
			r.PodDuration,
			r.PremiumPlan,
			formatFloat(r.ListeningTime),
			strconv.Itoa(r.Streams),
			strconv.Itoa(r.Skips),
			strconv.Itoa(r.DistinctTracks),
			formatFloat(r.SkipRate),
			formatFloat(r.DiversityScore),
			strconv.Itoa(r.BotLike),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
