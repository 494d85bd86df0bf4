package engine

import (
	"strings"
	"testing"
)

func TestBuildRetentionInsightExample(t *testing.T) {
	got := BuildRetentionInsight(10, 30, 100)
	if got.RepeatRate != 10.0 {
		t.Fatalf("repeat rate: got %v", got.RepeatRate)
	}
	if got.DelayRate != 30.0 {
		t.Fatalf("delay rate: got %v", got.DelayRate)
	}
	if got.RetentionBand != "low" || got.SeverityScore != 3 {
		t.Fatalf("band: got %q severity %d", got.RetentionBand, got.SeverityScore)
	}
	if got.PrimaryDriver != "delivery experience" {
		t.Fatalf("driver: got %q", got.PrimaryDriver)
	}
	if !strings.Contains(got.SummaryMessage, "10%") {
		t.Fatalf("summary does not mention the repeat rate: %q", got.SummaryMessage)
	}
	if got.Recommendation != recommendationUrgent {
		t.Fatalf("recommendation: got %q", got.Recommendation)
	}
}

func TestRetentionBandBoundaries(t *testing.T) {
	tests := []struct {
		rate     float64
		band     string
		severity int
	}{
		{0, "low", 3},
		{24.999, "low", 3},
		{25, "moderate", 2}, // half-open: the boundary belongs to the next band
		{49.999, "moderate", 2},
		{50, "strong", 1},
		{75, "very strong", 0},
		{100, "very strong", 0},
	}
	for _, tc := range tests {
		got := BuildRetentionInsight(tc.rate, 0, 100)
		if got.RetentionBand != tc.band || got.SeverityScore != tc.severity {
			t.Errorf("rate %v: got (%q, %d), want (%q, %d)",
				tc.rate, got.RetentionBand, got.SeverityScore, tc.band, tc.severity)
		}
	}
}

func TestDelayDriverBoundaries(t *testing.T) {
	tests := []struct {
		delayed int
		driver  string
	}{
		{60, "logistics reliability"},
		{50, "logistics reliability"}, // inclusive lower bound
		{49, "delivery experience"},
		{25, "delivery experience"},
		{24, "post-purchase engagement"},
		{0, "post-purchase engagement"},
	}
	for _, tc := range tests {
		got := BuildRetentionInsight(40, tc.delayed, 100)
		if got.PrimaryDriver != tc.driver {
			t.Errorf("%d/100 delayed: got driver %q, want %q", tc.delayed, got.PrimaryDriver, tc.driver)
		}
	}
}

func TestBuildRetentionInsightZeroOrders(t *testing.T) {
	got := BuildRetentionInsight(80, 10, 0)
	if got.DelayRate != 0 {
		t.Fatalf("zero total orders must yield a zero delay rate, got %v", got.DelayRate)
	}
	if got.PrimaryDriver != "post-purchase engagement" {
		t.Fatalf("driver: got %q", got.PrimaryDriver)
	}
	if got.RetentionBand != "very strong" {
		t.Fatalf("band: got %q", got.RetentionBand)
	}
	if got.Recommendation != recommendationHealthy {
		t.Fatalf("recommendation: got %q", got.Recommendation)
	}
}

func TestBuildRetentionInsightDeterministic(t *testing.T) {
	first := BuildRetentionInsight(33.333, 7, 42)
	second := BuildRetentionInsight(33.333, 7, 42)
	if first != second {
		t.Fatalf("same inputs produced different insights:\n%+v\n%+v", first, second)
	}
}

func TestFormatRateTrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{10.25, "10.25"},
		{10.5, "10.5"},
	}
	for _, tc := range tests {
		if got := formatRate(tc.in); got != tc.want {
			t.Errorf("formatRate(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
