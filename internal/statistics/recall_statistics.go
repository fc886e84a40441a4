// Package statistics aggregates diary mastery numbers into reports.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/worddiary/worddiary/internal/word"
)

// Filter restricts words by how recently they were added.
type Filter string

const (
	FilterDay   Filter = "day"
	FilterWeek  Filter = "week"
	FilterMonth Filter = "month"
	FilterYear  Filter = "year"
	FilterAll   Filter = "all"
)

var filterPeriods = map[Filter]time.Duration{
	FilterDay:   24 * time.Hour,
	FilterWeek:  7 * 24 * time.Hour,
	FilterMonth: 30 * 24 * time.Hour,
	FilterYear:  365 * 24 * time.Hour,
}

// ParseFilter validates a user-supplied filter name.
func ParseFilter(value string) (Filter, error) {
	switch Filter(value) {
	case FilterDay, FilterWeek, FilterMonth, FilterYear, FilterAll:
		return Filter(value), nil
	}
	return "", fmt.Errorf("unknown time filter %q, expected one of day, week, month, year, all", value)
}

// FilterByTime returns the words added within the filter's period.
func FilterByTime(words []word.Word, filter Filter, now time.Time) []word.Word {
	if filter == FilterAll {
		return words
	}
	period, ok := filterPeriods[filter]
	if !ok {
		return words
	}

	cutoff := now.Add(-period).UnixMilli()
	filtered := make([]word.Word, 0, len(words))
	for _, w := range words {
		if w.AddedAt >= cutoff {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// DiarySummary holds diary-wide mastery totals.
type DiarySummary struct {
	TotalWords     int
	TestedWords    int
	NeverTested    int
	TotalRecalls   int
	CorrectRecalls int
	Accuracy       float64 // correct / total recalls, 0 when never recalled
}

// Summarize computes the diary-wide totals.
func Summarize(words []word.Word) DiarySummary {
	summary := DiarySummary{TotalWords: len(words)}
	for _, w := range words {
		if w.RecallCount > 0 {
			summary.TestedWords++
		} else {
			summary.NeverTested++
		}
		summary.TotalRecalls += w.RecallCount
		summary.CorrectRecalls += w.CorrectCount
	}
	if summary.TotalRecalls > 0 {
		summary.Accuracy = float64(summary.CorrectRecalls) / float64(summary.TotalRecalls)
	}
	return summary
}

// PeriodStatistics counts diary additions per calendar month.
type PeriodStatistics struct {
	Period     string // "2025-06"
	AddedWords int
}

// CalculatePeriods groups words by the month they were added,
// newest period first.
func CalculatePeriods(words []word.Word) []PeriodStatistics {
	counts := make(map[string]int)
	for _, w := range words {
		period := time.UnixMilli(w.AddedAt).UTC().Format("2006-01")
		counts[period]++
	}

	periods := make([]PeriodStatistics, 0, len(counts))
	for period, count := range counts {
		periods = append(periods, PeriodStatistics{Period: period, AddedWords: count})
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}
