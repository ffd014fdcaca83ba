package stats

import (
	"math"
	"slices"
)

// RankDescending returns a copy of the series ordered by count, highest first.
// Equal counts keep their chronological order.
func RankDescending(series Series) Series {
	ranked := slices.Clone(series)
	slices.SortStableFunc(ranked, func(a, b Bucket) int {
		return b.Count - a.Count
	})
	return ranked
}

// Total returns the sum of bucket counts.
func Total(series Series) int {
	total := 0
	for _, b := range series {
		total += b.Count
	}
	return total
}

// MaxCount returns the largest bucket count, never less than 1 (chart scaling floor).
func MaxCount(series Series) int {
	maxVal := 1
	for _, b := range series {
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}
	return maxVal
}

// PercentOfTotal returns the bucket's rounded share of the series total. An empty total yields 0.
func PercentOfTotal(bucket Bucket, series Series) int {
	return Share(bucket.Count, Total(series))
}

// Share returns count/total as a rounded percentage, or 0 when total is 0.
func Share(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
