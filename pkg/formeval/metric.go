package formeval

import "strings"

// Metric identifies a scoring formula.
type Metric string

// MetricAccuracy scores each field as correct / (correct + incorrect).
const MetricAccuracy Metric = "accuracy"

// SupportedMetrics returns the names of all implemented metrics.
func SupportedMetrics() []string {
	return []string{string(MetricAccuracy)}
}

// ParseMetric converts a metric name to a Metric.
// Matching ignores case and surrounding whitespace.
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case MetricAccuracy:
		return MetricAccuracy, nil
	default:
		return "", &UnsupportedMetricError{Metric: name}
	}
}

func (m Metric) String() string {
	return string(m)
}
