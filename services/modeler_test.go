package services

import (
	"testing"

	"spotify-behavior-analysis/models"
)

// separableRecords builds a dataset where the bot label is fully determined
// by skip rate, so the classifier has a clean decision boundary to find.
func separableRecords() []*models.UserRecord {
	var records []*models.UserRecord
	for i := 0; i < 20; i++ {
		records = append(records, &models.UserRecord{
			SkipRate:       0.75 + 0.01*float64(i%5),
			DiversityScore: 0.05,
			ListeningTime:  300,
			AgeNumeric:     28,
			BotLike:        1,
		})
		records = append(records, &models.UserRecord{
			SkipRate:       0.10 + 0.01*float64(i%5),
			DiversityScore: 0.50,
			ListeningTime:  90,
			AgeNumeric:     28,
			BotLike:        0,
		})
	}
	return records
}

func TestFitBotClassifierSeparableData(t *testing.T) {
	m := NewModeler(newTestLogger())

	report := m.FitBotClassifier(separableRecords())
	if report.Accuracy < 0.95 {
		t.Errorf("accuracy on separable data: got %.3f, want >= 0.95", report.Accuracy)
	}
	if len(report.Coefficients) != len(report.FeatureNames) {
		t.Fatalf("coefficients/features mismatch: %d vs %d",
			len(report.Coefficients), len(report.FeatureNames))
	}
	// Higher skip rate must push toward the bot class.
	if report.Coefficients[0] <= 0 {
		t.Errorf("skip_rate coefficient: got %v, want > 0", report.Coefficients[0])
	}
	if report.Observations != 40 {
		t.Errorf("observations: got %d, want 40", report.Observations)
	}
}

func TestFitStreamModelRecoversLinearRelation(t *testing.T) {
	m := NewModeler(newTestLogger())

	// streams is an exact linear function of listening time.
	var records []*models.UserRecord
	for i := 1; i <= 50; i++ {
		lt := float64(i * 10)
		records = append(records, &models.UserRecord{
			ListeningTime: lt,
			SkipRate:      0,
			UsageMonths:   0,
			Streams:       int(50 + 10*lt),
		})
	}

	report := m.FitStreamModel(records)
	if report.R2 < 0.99 {
		t.Errorf("R2 on noiseless linear data: got %.4f, want >= 0.99", report.R2)
	}
	if report.Coefficients[0] <= 0 {
		t.Errorf("listening_time coefficient: got %v, want > 0", report.Coefficients[0])
	}
}

func TestFitStreamModelInteractionSign(t *testing.T) {
	m := NewModeler(newTestLogger())

	// Stream counts inflate when long listening time coincides with a high
	// skip rate, beyond what either predicts alone.
	var records []*models.UserRecord
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			lt := 60 + 20*float64(i)
			sr := 0.1 + 0.05*float64(j)
			streams := 2*lt + 100*sr + 8*lt*sr
			records = append(records, &models.UserRecord{
				ListeningTime: lt,
				SkipRate:      sr,
				Streams:       int(streams),
			})
		}
	}

	report := m.FitStreamModel(records)
	if report.R2 < 0.95 {
		t.Errorf("R2: got %.4f, want >= 0.95", report.R2)
	}
	if report.Coefficients[2] <= 0 {
		t.Errorf("interaction coefficient: got %v, want > 0", report.Coefficients[2])
	}
}

func TestFitAllRunsBothModels(t *testing.T) {
	m := NewModeler(newTestLogger())

	bot, streams := m.FitAll(separableRecords())
	if bot == nil || streams == nil {
		t.Fatal("FitAll returned a nil report")
	}
	if bot.Task != "classification" {
		t.Errorf("bot model task: got %q, want %q", bot.Task, "classification")
	}
	if streams.Task != "regression" {
		t.Errorf("stream model task: got %q, want %q", streams.Task, "regression")
	}
}
