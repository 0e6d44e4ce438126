package services

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"spotify-behavior-analysis/models"
	"spotify-behavior-analysis/utils"
)

// ErrEmptyDataset is returned when cleaning drops every row.
var ErrEmptyDataset = errors.New("cleaner: no rows left after cleaning")

// genreAliases folds free-text genre answers into canonical labels.
// Keys are compared after title-casing.
var genreAliases = map[string]string{
	"Classical & Melody, Dance": "Classical",
	"Old Songs":                 "Pop",
	"Trending Songs Random":     "Pop",
	"Kpop":                      "Pop",
	"All":                       "Melody",
}

// Cleaner transforms RawRecords into clean, validated UserRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean validates and normalizes raw rows. Bad rows are dropped, not fatal;
// only an entirely empty result is an error. Exact duplicate rows are
// dropped as well. The operation is idempotent on already-clean data.
func (c *Cleaner) Clean(raw []*models.RawRecord) ([]*models.UserRecord, error) {
	seen := utils.NewSeen()
	result := make([]*models.UserRecord, 0, len(raw))

	for _, r := range raw {
		if !seen.Add(rowKey(r)) {
			c.logger.Debug("[cleaner] duplicate row skipped")
			continue
		}

		rec, ok := c.cleanRow(r)
		if !ok {
			continue
		}
		result = append(result, rec)
	}

	if len(result) == 0 {
		return nil, ErrEmptyDataset
	}

	c.logger.Info("[cleaner] Cleaned %d → %d rows (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result, nil
}

func (c *Cleaner) cleanRow(r *models.RawRecord) (*models.UserRecord, bool) {
	age := normalizeText(r.Age)
	if age == "" {
		c.logger.Debug("[cleaner] dropping row: missing age")
		return nil, false
	}

	listening, err := parseNonNegativeFloat(r.ListeningTime)
	if err != nil {
		c.logger.Debug("[cleaner] dropping row: listening_time %q: %v", r.ListeningTime, err)
		return nil, false
	}
	streams, err := parseNonNegativeInt(r.Streams)
	if err != nil {
		c.logger.Debug("[cleaner] dropping row: streams %q: %v", r.Streams, err)
		return nil, false
	}
	skips, err := parseNonNegativeInt(r.Skips)
	if err != nil {
		c.logger.Debug("[cleaner] dropping row: skips %q: %v", r.Skips, err)
		return nil, false
	}
	distinct, err := parseNonNegativeInt(r.DistinctTracks)
	if err != nil {
		c.logger.Debug("[cleaner] dropping row: distinct_tracks %q: %v", r.DistinctTracks, err)
		return nil, false
	}
	rating, err := parseRating(r.ReccRating)
	if err != nil {
		c.logger.Debug("[cleaner] dropping row: music_recc_rating %q: %v", r.ReccRating, err)
		return nil, false
	}

	rec := &models.UserRecord{
		Age:           age,
		Gender:        normalizeText(r.Gender),
		UsagePeriod:   normalizeText(r.UsagePeriod),
		TimeSlot:      titleCase(r.TimeSlot),
		FavGenre:      normalizeGenre(r.FavGenre),
		ReccRating:    rating,
		PodListenFreq: normalizeText(r.PodListenFreq),
		PodGenre:      fillMissing(r.PodGenre, "Unknown"),
		PodFormat:     fillMissing(r.PodFormat, "Unknown"),
		PodHost:       fillMissing(r.PodHost, "Unknown"),
		PodDuration:   fillMissing(r.PodDuration, "Unknown"),
		PremiumPlan:   fillMissing(r.PremiumPlan, "None"),

		ListeningTime:  listening,
		Streams:        streams,
		Skips:          skips,
		DistinctTracks: distinct,
	}
	return rec, true
}

// rowKey builds the duplicate-detection key over every raw field.
func rowKey(r *models.RawRecord) string {
	return strings.Join([]string{
		r.Age, r.Gender, r.UsagePeriod, r.TimeSlot, r.FavGenre, r.ReccRating,
		r.PodListenFreq, r.PodGenre, r.PodFormat, r.PodHost, r.PodDuration,
		r.PremiumPlan, r.ListeningTime, r.Streams, r.Skips, r.DistinctTracks,
	}, "\x1f")
}

func parseNonNegativeFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative value")
	}
	return v, nil
}

func parseNonNegativeInt(raw string) (int, error) {
	// Spreadsheet exports sometimes render integers as "123.0".
	v, err := parseNonNegativeFloat(raw)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// parseRating accepts a 1–5 recommendation rating.
func parseRating(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	n := int(v)
	if n < 1 || n > 5 {
		return 0, errors.New("rating outside 1-5")
	}
	return n, nil
}

// normalizeGenre title-cases the answer and folds known aliases.
func normalizeGenre(s string) string {
	g := titleCase(s)
	if canonical, ok := genreAliases[g]; ok {
		return canonical
	}
	return g
}

// normalizeText strips leading/trailing whitespace and collapses internal whitespace.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), unicode.IsSpace)
	return strings.Join(fields, " ")
}

// titleCase normalizes whitespace and capitalizes each word.
func titleCase(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), unicode.IsSpace)
	for i, w := range fields {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 && unicode.IsLetter(runes[0]) {
			runes[0] = unicode.ToUpper(runes[0])
		}
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}

func fillMissing(s, fallback string) string {
	s = normalizeText(s)
	if s == "" {
		return fallback
	}
	return s
}
