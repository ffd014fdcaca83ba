package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"speakup-analytics/internal/complaints"

	"github.com/google/uuid"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "messy" or "surge"
	Distribution string // "uniform" or "weibull"
	Count        int
	Days         int
	Now          time.Time
	Seed         int64
}

var (
	canonicalStatuses = []string{"Pending", "In Progress", "Resolved", "Closed"}
	statusSpellings   = map[string][]string{
		"Pending":     {"Pending", "pending", "PENDING", "Awaiting review (pending)"},
		"In Progress": {"In Progress", "in-progress", "IN_PROGRESS", "work in progress"},
		"Resolved":    {"Resolved", "resolved", "RESOLVED"},
		"Closed":      {"Closed", "closed", "Closed by admin"},
	}
	urgencySpellings = [][]string{
		{"High", "high", "HIGH PRIORITY"},
		{"Medium", "medium", "Medium-ish"},
		{"Low", "low", "LOW"},
	}
	categorySpellings = [][]string{
		{"Billing", "billing", "BILLING"},
		{"Delivery Delay", "delivery-delay", "delivery_delay", "Delivery  Delay "},
		{"Product Quality", "product_quality", "Product-Quality"},
		{"Customer Service", "customer service"},
		{"Website", "website"},
		{"Refunds", "refunds"},
	}
)

// Generate produces cfg.Count complaints submitted over the last cfg.Days days.
// The same Seed always yields the same records.
func Generate(cfg GeneratorConfig) []complaints.Record {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days <= 0 {
		cfg.Days = 365
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	messy := cfg.Scenario == "messy"

	records := make([]complaints.Record, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		id := uuid.Must(uuid.NewRandomFromReader(rng))

		// 1. Age in days
		var ageDays float64
		switch {
		case cfg.Scenario == "surge" && rng.Float64() < 0.4:
			ageDays = rng.Float64() * 7
		case cfg.Distribution == "weibull":
			// Skewed towards recent submissions
			ageDays = math.Min(weibullSample(rng, 1.2, float64(cfg.Days)/4), float64(cfg.Days))
		default:
			ageDays = rng.Float64() * float64(cfg.Days)
		}
		submitted := cfg.Now.Add(-time.Duration(ageDays * 24 * float64(time.Hour)))

		// 2. Status follows age: recent complaints are mostly still open
		status := pickStatus(rng, ageDays)
		if messy {
			status = pick(rng, statusSpellings[status])
		}

		rec := complaints.Record{
			ID:             id.String(),
			Status:         status,
			Urgency:        urgency(rng, messy),
			Category:       category(rng, messy),
			SubmissionDate: complaints.Timestamp{Seconds: submitted.Unix(), Nanos: int32(submitted.Nanosecond())},
		}
		if messy {
			rec.SubmissionDate = messyDate(rng, submitted)
		}
		records = append(records, rec)
	}
	return records
}

func pickStatus(rng *rand.Rand, ageDays float64) string {
	openChance := 0.9
	switch {
	case ageDays > 60:
		openChance = 0.05
	case ageDays > 14:
		openChance = 0.3
	case ageDays > 3:
		openChance = 0.6
	}
	if rng.Float64() < openChance {
		return canonicalStatuses[rng.Intn(2)]
	}
	return canonicalStatuses[2+rng.Intn(2)]
}

func urgency(rng *rand.Rand, messy bool) *string {
	if messy {
		switch r := rng.Float64(); {
		case r < 0.10:
			return nil
		case r < 0.15:
			s := "unknown"
			return &s
		}
	}
	// High is rarer than Medium and Low
	weights := []float64{0.2, 0.45, 0.35}
	u, r := 0, rng.Float64()
	for i, w := range weights {
		if r < w {
			u = i
			break
		}
		r -= w
	}
	s := urgencySpellings[u][0]
	if messy {
		s = pick(rng, urgencySpellings[u])
	}
	return &s
}

func category(rng *rand.Rand, messy bool) *string {
	if messy {
		switch r := rng.Float64(); {
		case r < 0.08:
			return nil
		case r < 0.10:
			s := "  "
			return &s
		}
	}
	// Earlier categories are more frequent
	idx := int(math.Min(float64(len(categorySpellings)-1), math.Floor(-math.Log(1-rng.Float64())*1.5)))
	s := categorySpellings[idx][0]
	if messy {
		s = pick(rng, categorySpellings[idx])
	}
	return &s
}

func messyDate(rng *rand.Rand, t time.Time) complaints.DateLike {
	switch r := rng.Float64(); {
	case r < 0.05:
		return nil
	case r < 0.08:
		return complaints.DateString{Value: "not-a-date"}
	case r < 0.30:
		return complaints.EpochMillis(t.UnixMilli())
	case r < 0.50:
		return complaints.DateString{Value: t.UTC().Format(time.RFC3339)}
	case r < 0.60:
		return complaints.DateString{Value: t.UTC().Format("2006-01-02")}
	default:
		return complaints.Timestamp{Seconds: t.Unix()}
	}
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes records as <outDir>/<name>.jsonl.
func Save(outDir, name string, records []complaints.Record) (string, error) {
	cache := &complaints.Cache{Dir: outDir, Name: name}
	if err := cache.Save(records); err != nil {
		return "", fmt.Errorf("failed to save mock data: %w", err)
	}
	return cache.Path(), nil
}
