package model

import (
	"github.com/m-mizutani/goerr/v2"
)

const (
	JurisdictionUS = "US Law"
	JurisdictionHK = "HK Law"

	// DefaultPartnerPosition is the staff position that satisfies
	// jurisdiction coverage
	DefaultPartnerPosition = "Partner"
)

// CoverageConfig is the staffing-coverage policy: which jurisdictions every
// ongoing deal must have partner-level coverage for, and which position
// label counts as partner. Loaded from YAML; assignments with jurisdiction
// labels outside the tracked list (e.g. "B&C") never satisfy coverage and
// never raise a gap.
type CoverageConfig struct {
	Jurisdictions   []string `yaml:"jurisdictions"`
	PartnerPosition string   `yaml:"partnerPosition"`
}

// DefaultCoverageConfig returns the built-in policy: US Law and HK Law
// partner coverage
func DefaultCoverageConfig() *CoverageConfig {
	return &CoverageConfig{
		Jurisdictions:   []string{JurisdictionUS, JurisdictionHK},
		PartnerPosition: DefaultPartnerPosition,
	}
}

// Validate validates the coverage configuration
func (c *CoverageConfig) Validate() error {
	if len(c.Jurisdictions) == 0 {
		return goerr.New("at least one jurisdiction is required")
	}

	seen := make(map[string]bool)
	for _, j := range c.Jurisdictions {
		if j == "" {
			return goerr.New("jurisdiction label cannot be empty")
		}
		if seen[j] {
			return goerr.New("duplicate jurisdiction", goerr.V("jurisdiction", j))
		}
		seen[j] = true
	}

	if c.PartnerPosition == "" {
		return goerr.New("partner position is required")
	}

	return nil
}

// IsPartner reports whether the position label satisfies partner-level
// coverage. Matching is exact: unrecognized free-text positions never
// qualify.
func (c *CoverageConfig) IsPartner(position string) bool {
	return position == c.PartnerPosition
}

// Covered reports whether any assignment provides partner-level coverage
// for the given jurisdiction
func (c *CoverageConfig) Covered(jurisdiction string, assignments []Assignment) bool {
	for _, a := range assignments {
		if a.Jurisdiction == jurisdiction && c.IsPartner(a.Position) {
			return true
		}
	}
	return false
}

// MissingJurisdictions returns the tracked jurisdictions with no
// partner-level assignment, in policy order
func (c *CoverageConfig) MissingJurisdictions(assignments []Assignment) []string {
	var missing []string
	for _, j := range c.Jurisdictions {
		if !c.Covered(j, assignments) {
			missing = append(missing, j)
		}
	}
	return missing
}
