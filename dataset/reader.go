package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"spotify-behavior-analysis/models"
)

// ErrUnsupportedFormat is returned for file extensions the loader cannot read.
var ErrUnsupportedFormat = errors.New("dataset: unsupported file format")

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset: required column %q not found", e.Column)
}

// Column names after header normalization. The misspelled "preffered_*"
// names match the survey export verbatim.
const (
	colAge            = "age"
	colGender         = "gender"
	colUsagePeriod    = "spotify_usage_period"
	colTimeSlot       = "music_time_slot"
	colFavGenre       = "fav_music_genre"
	colReccRating     = "music_recc_rating"
	colPodListenFreq  = "pod_lis_frequency"
	colPodGenre       = "fav_pod_genre"
	colPodFormat      = "preffered_pod_format"
	colPodHost        = "pod_host_preference"
	colPodDuration    = "preffered_pod_duration"
	colPremiumPlan    = "preffered_premium_plan"
	colListeningTime  = "listening_time"
	colStreams        = "streams"
	colSkips          = "skips"
	colDistinctTracks = "distinct_tracks"
)

var requiredColumns = []string{
	colAge,
	colFavGenre,
	colReccRating,
	colListeningTime,
	colStreams,
	colSkips,
	colDistinctTracks,
}

var headerRun = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader converts a raw header cell to the snake_case column name
// used throughout the pipeline.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = headerRun.ReplaceAllString(h, "_")
	return strings.Trim(h, "_")
}

// Load reads the dataset at path into raw records. The format is selected
// by file extension: .xlsx/.xlsm via excelize, .csv via encoding/csv.
func Load(path string) ([]*models.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadExcel(path string) ([]*models.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

func loadCSV(path string) ([]*models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]*models.RawRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset: file has no header row")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[NormalizeHeader(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	// Spreadsheet rows can come back shorter than the header when trailing
	// cells are empty, so every access is bounds-checked.
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]*models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, &models.RawRecord{
			Age:            cell(row, colAge),
			Gender:         cell(row, colGender),
			UsagePeriod:    cell(row, colUsagePeriod),
			TimeSlot:       cell(row, colTimeSlot),
			FavGenre:       cell(row, colFavGenre),
			ReccRating:     cell(row, colReccRating),
			PodListenFreq:  cell(row, colPodListenFreq),
			PodGenre:       cell(row, colPodGenre),
			PodFormat:      cell(row, colPodFormat),
			PodHost:        cell(row, colPodHost),
			PodDuration:    cell(row, colPodDuration),
			PremiumPlan:    cell(row, colPremiumPlan),
			ListeningTime:  cell(row, colListeningTime),
			Streams:        cell(row, colStreams),
			Skips:          cell(row, colSkips),
			DistinctTracks: cell(row, colDistinctTracks),
		})
	}
	return records, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
