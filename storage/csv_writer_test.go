package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"spotify-behavior-analysis/models"
)

func sampleRecords() []*models.UserRecord {
	return []*models.UserRecord{
		{
			Age: "20-35", AgeNumeric: 28, Gender: "Female",
			UsagePeriod: "More than 2 years", UsageMonths: 30,
			TimeSlot: "Night", FavGenre: "Pop", ReccRating: 4,
			PodListenFreq: "Daily", PodFrequency: 4,
			PodGenre: "Comedy", PodFormat: "Interview", PodHost: "Both",
			PodDuration: "Shorter", PremiumPlan: "Family plan",
			ListeningTime: 120.5, Streams: 800, Skips: 200, DistinctTracks: 150,
			SkipRate: 0.25, DiversityScore: 0.1875, BotLike: 0,
		},
		{
			Age: "12-20", AgeNumeric: 16, Gender: "Male",
			UsagePeriod: "Less than 6 months", UsageMonths: 3,
			TimeSlot: "Morning", FavGenre: "Melody", ReccRating: 1,
			PodListenFreq: "Never", PodFrequency: 0,
			PodGenre: "Unknown", PodFormat: "Unknown", PodHost: "Unknown",
			PodDuration: "Unknown", PremiumPlan: "None",
			ListeningTime: 600, Streams: 50000, Skips: 48000, DistinctTracks: 3,
			SkipRate: 0.96, DiversityScore: 0.00006, BotLike: 1,
		},
	}
}

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse written csv: %v", err)
	}
	return rows
}

func TestCSVWriterHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readBack(t, path)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
	if len(rows[0]) != len(Header) {
		t.Fatalf("header width: got %d, want %d", len(rows[0]), len(Header))
	}
	if rows[0][0] != "age" || rows[0][len(Header)-1] != "bot_like" {
		t.Errorf("unexpected header: %v", rows[0])
	}
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	records := sampleRecords()

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(records); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readBack(t, path)
	if len(rows) != len(records)+1 {
		t.Fatalf("row count: got %d, want %d", len(rows), len(records)+1)
	}

	col := make(map[string]int, len(Header))
	for i, h := range rows[0] {
		col[h] = i
	}

	for i, r := range records {
		row := rows[i+1]

		gotSkip, err := strconv.ParseFloat(row[col["skip_rate"]], 64)
		if err != nil {
			t.Fatalf("row %d: parse skip_rate: %v", i, err)
		}
		if gotSkip != r.SkipRate {
			t.Errorf("row %d: skip_rate round-trip: got %v, want %v", i, gotSkip, r.SkipRate)
		}

		gotDiv, err := strconv.ParseFloat(row[col["diversity_score"]], 64)
		if err != nil {
			t.Fatalf("row %d: parse diversity_score: %v", i, err)
		}
		if gotDiv != r.DiversityScore {
			t.Errorf("row %d: diversity_score round-trip: got %v, want %v", i, gotDiv, r.DiversityScore)
		}

		if row[col["bot_like"]] != strconv.Itoa(r.BotLike) {
			t.Errorf("row %d: bot_like round-trip: got %q, want %d", i, row[col["bot_like"]], r.BotLike)
		}
		if row[col["streams"]] != strconv.Itoa(r.Streams) {
			t.Errorf("row %d: streams round-trip: got %q, want %d", i, row[col["streams"]], r.Streams)
		}
		if row[col["fav_music_genre"]] != r.FavGenre {
			t.Errorf("row %d: genre round-trip: got %q, want %q", i, row[col["fav_music_genre"]], r.FavGenre)
		}
	}
}

func TestCSVWriterDoesNotTouchInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	original := []byte("age,streams\n20-35,100\n")
	if err := os.WriteFile(input, original, 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	w, err := NewCSVWriter(filepath.Join(dir, "output.csv"))
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(sampleRecords()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	after, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read input back: %v", err)
	}
	if string(after) != string(original) {
		t.Error("input file was modified by persistence")
	}
}
