package discover

import (
	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
)

var cfgValidator = validator.New()

// Config holds engine-level tunables. The early-stop and special-domain
// confidence values are historical calibration points; they are defaults,
// not derived constants.
type Config struct {
	// EarlyStopConfidence stops the strategy loop once any accumulated
	// candidate reaches it
	EarlyStopConfidence int `validate:"gte=0,lte=100"`

	// SpecialDomainConfidence is assigned to verified special-domain hits
	SpecialDomainConfidence int `validate:"gte=0,lte=100"`

	// DeepScanDepth bounds the deep link scanner's recursion
	DeepScanDepth int `validate:"gte=0,lte=5"`

	// DeepScanLinkLimit bounds how many nested links are validated per page
	DeepScanLinkLimit int `validate:"gte=1,lte=20"`
}

// DefaultConfig returns the standard engine settings
func DefaultConfig() Config {
	return Config{
		EarlyStopConfidence:     85,
		SpecialDomainConfidence: 99,
		DeepScanDepth:           2,
		DeepScanLinkLimit:       5,
	}
}

// Validate checks the configuration for structural mistakes
func (c Config) Validate() error {
	if err := cfgValidator.Struct(c); err != nil {
		return failure.New(ErrInvalidConfig,
			failure.Message("engine configuration is invalid"),
			failure.Context{"error": err.Error()},
		)
	}
	return nil
}
