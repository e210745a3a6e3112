package trends

import "time"

// DetectorConfig holds the tunables of the trend detection engine
type DetectorConfig struct {
	// TrackedKeywords is the fixed vocabulary scanned for on every run
	TrackedKeywords []string

	// WindowHours is the detection window used when the caller does not
	// pick one (early warnings, scheduled scans)
	WindowHours int

	// SearchVolumeMentionDivisor maps the 0-100 search-volume index onto
	// synthetic mention counts via integer division
	SearchVolumeMentionDivisor int

	// WarningThreshold is the default minimum strength for early warnings
	WarningThreshold float64

	// WarningVelocityThreshold is the minimum |velocity| for early warnings
	WarningVelocityThreshold float64

	// AgreementLookback is the fixed window for cross-source agreement,
	// independent of the detection window
	AgreementLookback time.Duration
}

// DefaultDetectorConfig returns the production defaults
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		TrackedKeywords: []string{
			"iPhone", "OnePlus", "Samsung", "Xiaomi", "Realme",
			"Amazon", "Flipkart", "laptop", "phone", "smartphone",
			"gadget", "fashion", "ecommerce", "sale", "discount",
		},
		WindowHours:                48,
		SearchVolumeMentionDivisor: 10,
		WarningThreshold:           50.0,
		WarningVelocityThreshold:   0.5,
		AgreementLookback:          24 * time.Hour,
	}
}
