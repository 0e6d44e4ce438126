package services

import (
	"spotify-behavior-analysis/models"
	"spotify-behavior-analysis/stats"
	"spotify-behavior-analysis/utils"
)

// Ordinal proxy tables for the survey's bracketed answers.

var ageMidpoints = map[string]float64{
	"6-12":  9,
	"12-20": 16,
	"20-35": 28,
	"35-60": 48,
	"60+":   70,
}

var usagePeriodMonths = map[string]float64{
	"Less than 6 months": 3,
	"6 months to 1 year": 9,
	"1 year to 2 years":  18,
	"More than 2 years":  30,
}

var podFrequencyScore = map[string]int{
	"Never":                0,
	"Rarely":               1,
	"Once a week":          2,
	"Several times a week": 3,
	"Daily":                4,
}

// BotThresholds are the dataset quantiles the bot rule is evaluated
// against. Once fitted, labeling is a pure per-row function.
type BotThresholds struct {
	StreamsP75   float64
	DiversityP25 float64
}

// FeatureEngineer computes the derived columns on cleaned records.
type FeatureEngineer struct {
	logger *utils.Logger
}

// NewFeatureEngineer creates a FeatureEngineer with the given logger.
func NewFeatureEngineer(logger *utils.Logger) *FeatureEngineer {
	return &FeatureEngineer{logger: logger}
}

// Engineer fills in the derived fields for every record: per-row ratios and
// ordinal proxies first, then the bot label against thresholds fitted over
// the whole dataset. Records are returned with their thresholds so callers
// can label further rows consistently.
func (f *FeatureEngineer) Engineer(records []*models.UserRecord) ([]*models.UserRecord, BotThresholds) {
	for _, r := range records {
		r.AgeNumeric = ageToNumeric(r.Age)
		r.UsageMonths = usagePeriodMonths[r.UsagePeriod]
		r.PodFrequency = podFrequencyScore[r.PodListenFreq]
		r.SkipRate = ratio(r.Skips, r.Streams)
		r.DiversityScore = ratio(r.DistinctTracks, r.Streams)
	}

	th := f.fitThresholds(records)
	bots := 0
	for _, r := range records {
		r.BotLike = LabelBot(r, th)
		bots += r.BotLike
	}

	f.logger.Info("[features] Engineered %d rows — bot thresholds: streams > %.0f, diversity ≤ %.3f (%d flagged)",
		len(records), th.StreamsP75, th.DiversityP25, bots)
	return records, th
}

// ratio divides with a minimum denominator of 1, so zero-stream rows yield
// 0 rather than NaN.
func ratio(num, den int) float64 {
	if den < 1 {
		den = 1
	}
	return float64(num) / float64(den)
}

// ageToNumeric maps an age bracket to its midpoint. A plain numeric answer
// is taken as-is; unknown brackets fall back to 0.
func ageToNumeric(age string) float64 {
	if mid, ok := ageMidpoints[age]; ok {
		return mid
	}
	if v, err := parseNonNegativeFloat(age); err == nil {
		return v
	}
	return 0
}

func (f *FeatureEngineer) fitThresholds(records []*models.UserRecord) BotThresholds {
	streams := make([]float64, len(records))
	diversity := make([]float64, len(records))
	for i, r := range records {
		streams[i] = float64(r.Streams)
		diversity[i] = r.DiversityScore
	}
	return BotThresholds{
		StreamsP75:   stats.Percentile(streams, 75),
		DiversityP25: stats.Percentile(diversity, 25),
	}
}

// LabelBot flags a row when at least two of high streams, low diversity,
// and low recommendation rating hold.
func LabelBot(r *models.UserRecord, th BotThresholds) int {
	highStreams := float64(r.Streams) > th.StreamsP75
	lowDiversity := r.DiversityScore <= th.DiversityP25
	lowRecc := r.ReccRating <= 2

	if (highStreams && lowDiversity) || (highStreams && lowRecc) || (lowDiversity && lowRecc) {
		return 1
	}
	return 0
}
