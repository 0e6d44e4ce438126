package models

// RawRecord holds one survey row exactly as read from the spreadsheet.
// Every field is an unparsed string; raw rows are never mutated after load.
type RawRecord struct {
	Age            string
	Gender         string
	UsagePeriod    string
	TimeSlot       string
	FavGenre       string
	ReccRating     string
	PodListenFreq  string
	PodGenre       string
	PodFormat      string
	PodHost        string
	PodDuration    string
	PremiumPlan    string
	ListeningTime  string
	Streams        string
	Skips          string
	DistinctTracks string
}

// UserRecord is the cleaned, typed row plus the engineered features,
// ready for persistence and modeling.
type UserRecord struct {
	Age           string
	AgeNumeric    float64
	Gender        string
	UsagePeriod   string
	UsageMonths   float64
	TimeSlot      string
	FavGenre      string
	ReccRating    int
	PodListenFreq string
	PodFrequency  int
	PodGenre      string
	PodFormat     string
	PodHost       string
	PodDuration   string
	PremiumPlan   string

	ListeningTime  float64
	Streams        int
	Skips          int
	DistinctTracks int

	// Derived fields, pure per-row functions of the values above
	// (given fixed bot thresholds).
	SkipRate       float64
	DiversityScore float64
	BotLike        int
}

// ColumnSummary is one row of the descriptive-statistics table.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	TotalUsers int
	BotUsers   int

	Summaries    []ColumnSummary
	UsersByGenre map[string]int

	// Group means keyed by metric name, split on the bot_like label.
	BotMeans   map[string]float64
	HumanMeans map[string]float64

	SkipStreamCorrelation float64
}

// RegressionReport holds one fitted model: feature names line up with
// coefficients; Accuracy is set for classification, R2/RMSE for regression.
type RegressionReport struct {
	Name         string
	Task         string // "classification" or "regression"
	FeatureNames []string
	Coefficients []float64
	Intercept    float64
	Accuracy     float64
	R2           float64
	RMSE         float64
	Observations int
}
