package services

import (
	"fmt"
	"math"
	"strings"

	"spotify-behavior-analysis/models"
	"spotify-behavior-analysis/stats"
	"spotify-behavior-analysis/utils"
)

// Modeler fits the two regression analyses over the engineered dataset:
// a logistic bot classifier and a linear stream-count model with an
// interaction term. Fits are deterministic: zero-initialized weights and
// full-batch gradient descent.
type Modeler struct {
	logger *utils.Logger

	LearningRate float64
	Epochs       int
}

// NewModeler creates a Modeler with default hyperparameters.
func NewModeler(logger *utils.Logger) *Modeler {
	return &Modeler{
		logger:       logger,
		LearningRate: 0.1,
		Epochs:       5000,
	}
}

// FitAll runs the two independent fits on a worker pool.
func (m *Modeler) FitAll(records []*models.UserRecord) (bot, streams *models.RegressionReport) {
	pool := utils.NewWorkerPool(2)
	pool.Submit(func() { bot = m.FitBotClassifier(records) })
	pool.Submit(func() { streams = m.FitStreamModel(records) })
	pool.Wait()
	return bot, streams
}

// FitBotClassifier fits bot_like ~ skip_rate + diversity_score +
// listening_time + age_numeric via logistic regression on standardized
// features.
func (m *Modeler) FitBotClassifier(records []*models.UserRecord) *models.RegressionReport {
	features := []string{"skip_rate", "diversity_score", "listening_time", "age_numeric"}
	if len(records) == 0 {
		return &models.RegressionReport{
			Name: "Bot classification (logistic)", Task: "classification",
			FeatureNames: features, Coefficients: make([]float64, len(features)),
		}
	}

	X := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		X[i] = []float64{r.SkipRate, r.DiversityScore, r.ListeningTime, r.AgeNumeric}
		y[i] = float64(r.BotLike)
	}
	Xs := stats.NewStandardizer().FitTransform(X)

	w, b := fitLogistic(Xs, y, m.LearningRate, m.Epochs)

	correct := 0
	for i, row := range Xs {
		pred := 0.0
		if sigmoid(dot(w, row)+b) >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	acc := float64(correct) / float64(len(y))

	m.logger.Info("[modeler] bot classifier fitted: accuracy %.3f over %d rows", acc, len(records))
	return &models.RegressionReport{
		Name:         "Bot classification (logistic)",
		Task:         "classification",
		FeatureNames: features,
		Coefficients: w,
		Intercept:    b,
		Accuracy:     acc,
		Observations: len(records),
	}
}

// FitStreamModel fits streams ~ listening_time + skip_rate +
// listening_time×skip_rate + usage_months via linear regression on
// standardized features. The target is standardized for the fit; RMSE is
// reported back in stream units.
func (m *Modeler) FitStreamModel(records []*models.UserRecord) *models.RegressionReport {
	features := []string{"listening_time", "skip_rate", "listening_time:skip_rate", "usage_months"}
	if len(records) == 0 {
		return &models.RegressionReport{
			Name: "Stream inflation (linear, interaction)", Task: "regression",
			FeatureNames: features, Coefficients: make([]float64, len(features)),
		}
	}

	X := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		X[i] = []float64{
			r.ListeningTime,
			r.SkipRate,
			r.ListeningTime * r.SkipRate,
			r.UsageMonths,
		}
		y[i] = float64(r.Streams)
	}
	Xs := stats.NewStandardizer().FitTransform(X)

	yMean := stats.Mean(y)
	yStd := stats.Std(y)
	if yStd == 0 {
		yStd = 1
	}
	ys := make([]float64, len(y))
	for i, v := range y {
		ys[i] = (v - yMean) / yStd
	}

	w, b := fitLinear(Xs, ys, m.LearningRate, m.Epochs)

	pred := make([]float64, len(ys))
	for i, row := range Xs {
		pred[i] = dot(w, row) + b
	}

	report := &models.RegressionReport{
		Name:         "Stream inflation (linear, interaction)",
		Task:         "regression",
		FeatureNames: features,
		Coefficients: w,
		Intercept:    b,
		R2:           r2(ys, pred),
		RMSE:         rmse(ys, pred) * yStd,
		Observations: len(records),
	}
	m.logger.Info("[modeler] stream model fitted: R² %.3f, RMSE %.1f over %d rows",
		report.R2, report.RMSE, len(records))
	return report
}

// Print renders a fitted model in the report style.
func (m *Modeler) Print(r *models.RegressionReport) {
	thin := strings.Repeat("─", 72)

	fmt.Printf("\033[1;33m  %s\033[0m\n", r.Name)
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Observations : %d\n", r.Observations)
	switch r.Task {
	case "classification":
		fmt.Printf("  Accuracy     : \033[1;32m%.3f\033[0m\n", r.Accuracy)
	case "regression":
		fmt.Printf("  R²           : \033[1;32m%.3f\033[0m\n", r.R2)
		fmt.Printf("  RMSE         : %.2f\n", r.RMSE)
	}
	fmt.Printf("  Intercept    : %+.4f\n", r.Intercept)
	for i, name := range r.FeatureNames {
		fmt.Printf("  %-26s %+.4f\n", name, r.Coefficients[i])
	}
	fmt.Println()
}

// Gradient-descent fitters. Both average gradients over the batch so the
// learning rate is independent of dataset size.

func fitLogistic(X [][]float64, y []float64, lr float64, epochs int) ([]float64, float64) {
	w := make([]float64, len(X[0]))
	b := 0.0
	n := float64(len(X))

	for ep := 0; ep < epochs; ep++ {
		gW := make([]float64, len(w))
		gb := 0.0
		for i, row := range X {
			d := sigmoid(dot(w, row)+b) - y[i]
			for j, v := range row {
				gW[j] += d * v
			}
			gb += d
		}
		for j := range w {
			w[j] -= lr * gW[j] / n
		}
		b -= lr * gb / n
	}
	return w, b
}

func fitLinear(X [][]float64, y []float64, lr float64, epochs int) ([]float64, float64) {
	w := make([]float64, len(X[0]))
	b := 0.0
	n := float64(len(X))

	for ep := 0; ep < epochs; ep++ {
		gW := make([]float64, len(w))
		gb := 0.0
		for i, row := range X {
			d := dot(w, row) + b - y[i]
			for j, v := range row {
				gW[j] += d * v
			}
			gb += d
		}
		for j := range w {
			w[j] -= lr * gW[j] / n
		}
		b -= lr * gb / n
	}
	return w, b
}

func dot(w, x []float64) float64 {
	s := 0.0
	for j, v := range x {
		s += w[j] * v
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func rmse(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(yTrue)))
}

func r2(yTrue, yPred []float64) float64 {
	mean := stats.Mean(yTrue)
	ssTot, ssRes := 0.0, 0.0
	for i := range yTrue {
		d := yTrue[i] - mean
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
