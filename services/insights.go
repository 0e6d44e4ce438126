package services

import (
	"fmt"
	"sort"
	"strings"

	"spotify-behavior-analysis/models"
	"spotify-behavior-analysis/stats"
	"spotify-behavior-analysis/utils"
)

// InsightService computes the descriptive-statistics report over the
// cleaned dataset.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// summaryColumns lists the numeric columns in report order.
var summaryColumns = []string{
	"listening_time",
	"streams",
	"skips",
	"skip_rate",
	"diversity_score",
	"age_numeric",
}

func columnValues(records []*models.UserRecord, col string) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		switch col {
		case "listening_time":
			out[i] = r.ListeningTime
		case "streams":
			out[i] = float64(r.Streams)
		case "skips":
			out[i] = float64(r.Skips)
		case "skip_rate":
			out[i] = r.SkipRate
		case "diversity_score":
			out[i] = r.DiversityScore
		case "age_numeric":
			out[i] = r.AgeNumeric
		}
	}
	return out
}

func (s *InsightService) Generate(records []*models.UserRecord) *models.InsightReport {
	report := &models.InsightReport{
		UsersByGenre: make(map[string]int),
		BotMeans:     make(map[string]float64),
		HumanMeans:   make(map[string]float64),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalUsers = len(records)

	var bots, humans []*models.UserRecord
	for _, r := range records {
		if r.BotLike == 1 {
			report.BotUsers++
			bots = append(bots, r)
		} else {
			humans = append(humans, r)
		}
		if r.FavGenre != "" {
			report.UsersByGenre[r.FavGenre]++
		}
	}

	for _, col := range summaryColumns {
		d := stats.Describe(columnValues(records, col))
		report.Summaries = append(report.Summaries, models.ColumnSummary{
			Column: col,
			Count:  d.Count,
			Mean:   d.Mean,
			Std:    d.Std,
			Min:    d.Min,
			P25:    d.P25,
			Median: d.Median,
			P75:    d.P75,
			Max:    d.Max,
		})
	}

	for _, col := range []string{"listening_time", "streams", "skip_rate", "diversity_score"} {
		report.BotMeans[col] = stats.Mean(columnValues(bots, col))
		report.HumanMeans[col] = stats.Mean(columnValues(humans, col))
	}

	report.SkipStreamCorrelation = stats.Correlation(
		columnValues(records, "skip_rate"),
		columnValues(records, "streams"),
	)

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 72)
	thin := strings.Repeat("─", 72)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 SPOTIFY USER BEHAVIOR INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Users analyzed    : \033[1m%d\033[0m\n", r.TotalUsers)
	fmt.Printf("  Bot-like accounts : \033[1m%d\033[0m", r.BotUsers)
	if r.TotalUsers > 0 {
		fmt.Printf(" (%.1f%%)", 100*float64(r.BotUsers)/float64(r.TotalUsers))
	}
	fmt.Println()
	fmt.Println()

	// Descriptive statistics
	fmt.Printf("\033[1;33m  Descriptive Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-16s %6s %9s %9s %8s %8s %8s\n",
		"column", "count", "mean", "std", "min", "median", "max")
	for _, c := range r.Summaries {
		fmt.Printf("  %-16s %6d %9.3f %9.3f %8.2f %8.2f %8.2f\n",
			c.Column, c.Count, c.Mean, c.Std, c.Min, c.Median, c.Max)
	}
	fmt.Println()

	// Bot vs human group means
	fmt.Printf("\033[1;33m  Bot vs. Human Means\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-16s %12s %12s\n", "metric", "bot", "human")
	for _, col := range []string{"listening_time", "streams", "skip_rate", "diversity_score"} {
		fmt.Printf("  %-16s %12.3f %12.3f\n", col, r.BotMeans[col], r.HumanMeans[col])
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Correlation\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  skip_rate vs streams : \033[1m%.3f\033[0m\n\n", r.SkipStreamCorrelation)

	// Users by favorite genre
	fmt.Printf("\033[1;33m  Users by Favorite Genre\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.UsersByGenre) == 0 {
		fmt.Printf("  No genre data\n")
	} else {
		type genreCount struct {
			genre string
			count int
		}
		var genres []genreCount
		for g, n := range r.UsersByGenre {
			genres = append(genres, genreCount{g, n})
		}
		sort.Slice(genres, func(i, j int) bool {
			if genres[i].count != genres[j].count {
				return genres[i].count > genres[j].count
			}
			return genres[i].genre < genres[j].genre
		})
		for _, gc := range genres {
			bar := strings.Repeat("█", gc.count)
			fmt.Printf("  %-20s %s (%d)\n", truncate(gc.genre, 18), bar, gc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
