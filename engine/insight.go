package engine

import (
	"fmt"
	"strconv"
)

// InsightResult is the structured retention narrative produced by
// BuildRetentionInsight.
type InsightResult struct {
	RepeatRate     float64 `json:"repeat_rate"`
	DelayRate      float64 `json:"delay_rate"`
	RetentionBand  string  `json:"retention_band"`
	SeverityScore  int     `json:"severity_score"`
	PrimaryDriver  string  `json:"primary_driver"`
	SummaryMessage string  `json:"summary_message"`
	DriverMessage  string  `json:"driver_message"`
	Recommendation string  `json:"recommendation"`
}

// retentionBands are evaluated in order, first match wins, on
// repeatRate < Upper. Half-open intervals: a repeat rate of exactly 25 falls
// through the first band into "moderate".
var retentionBands = []struct {
	Upper    float64
	Label    string
	Severity int
}{
	{25, "low", 3},
	{50, "moderate", 2},
	{75, "strong", 1},
}

// delayDrivers are evaluated in order, first match wins, on delayRate >= Min.
var delayDrivers = []struct {
	Min     float64
	Driver  string
	Message string
}{
	{
		Min:    50,
		Driver: "logistics reliability",
		Message: "A high delivery delay rate suggests logistics performance is a major" +
			" contributor to low repeat purchases.",
	},
	{
		Min:    25,
		Driver: "delivery experience",
		Message: "Delivery delays affect a significant portion of orders and may be" +
			" impacting customer satisfaction.",
	},
}

const (
	fallbackDriver        = "post-purchase engagement"
	fallbackDriverMessage = "Delivery performance appears stable, indicating that post-purchase" +
		" engagement and communication may be limiting retention."

	recommendationUrgent = "Retention is critically low. Prioritizing improvements in delivery" +
		" reliability and post-purchase experience could significantly improve" +
		" repeat purchases."
	recommendationModerate = "Retention shows early potential. Targeted improvements in customer" +
		" experience could help convert first-time buyers into repeat customers."
	recommendationHealthy = "Retention performance is healthy. Continued focus on customer experience" +
		" can help sustain repeat purchasing behavior."
)

// BuildRetentionInsight classifies retention health from three numeric
// signals and composes the narrative. The retention band (from the repeat
// rate) and the primary driver (from the delay rate) are derived
// independently and then combined, so the rule set stays small while the
// narrative space is combinatorial.
func BuildRetentionInsight(repeatRate float64, delayedOrders, totalOrders int) InsightResult {
	delayRate := 0.0
	if totalOrders > 0 {
		delayRate = float64(delayedOrders) / float64(totalOrders) * 100
	}

	band := "very strong"
	severity := 0
	for _, b := range retentionBands {
		if repeatRate < b.Upper {
			band = b.Label
			severity = b.Severity
			break
		}
	}

	driver := fallbackDriver
	driverMessage := fallbackDriverMessage
	for _, d := range delayDrivers {
		if delayRate >= d.Min {
			driver = d.Driver
			driverMessage = d.Message
			break
		}
	}

	summary := fmt.Sprintf(
		"Customer retention is %s, with only %s%% of customers placing repeat orders.",
		band, formatRate(round2f(repeatRate)),
	)

	recommendation := recommendationHealthy
	switch {
	case severity >= 3:
		recommendation = recommendationUrgent
	case severity == 2:
		recommendation = recommendationModerate
	}

	return InsightResult{
		RepeatRate:     round2f(repeatRate),
		DelayRate:      round2f(delayRate),
		RetentionBand:  band,
		SeverityScore:  severity,
		PrimaryDriver:  driver,
		SummaryMessage: summary,
		DriverMessage:  driverMessage,
		Recommendation: recommendation,
	}
}

// formatRate renders a rounded rate without trailing zeros ("10", "10.25").
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
