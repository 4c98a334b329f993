package model_test

import (
	"testing"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestCoverageConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultCoverageConfig().Validate())
	})

	t.Run("rejects empty jurisdictions", func(t *testing.T) {
		cfg := &model.CoverageConfig{PartnerPosition: "Partner"}
		gt.Error(t, cfg.Validate())
	})

	t.Run("rejects duplicate jurisdictions", func(t *testing.T) {
		cfg := &model.CoverageConfig{
			Jurisdictions:   []string{"US Law", "US Law"},
			PartnerPosition: "Partner",
		}
		gt.Error(t, cfg.Validate())
	})

	t.Run("rejects empty partner position", func(t *testing.T) {
		cfg := &model.CoverageConfig{Jurisdictions: []string{"US Law"}}
		gt.Error(t, cfg.Validate())
	})
}

func TestCoverageConfigCovered(t *testing.T) {
	cfg := model.DefaultCoverageConfig()

	t.Run("partner in jurisdiction satisfies coverage", func(t *testing.T) {
		assignments := []model.Assignment{
			{Jurisdiction: model.JurisdictionUS, Position: "Partner"},
		}
		gt.True(t, cfg.Covered(model.JurisdictionUS, assignments))
		gt.False(t, cfg.Covered(model.JurisdictionHK, assignments))
	})

	t.Run("non-partner does not satisfy coverage", func(t *testing.T) {
		assignments := []model.Assignment{
			{Jurisdiction: model.JurisdictionUS, Position: "Associate"},
		}
		gt.False(t, cfg.Covered(model.JurisdictionUS, assignments))
	})

	t.Run("partner under non-legal label does not satisfy coverage", func(t *testing.T) {
		assignments := []model.Assignment{
			{Jurisdiction: "B&C", Position: "Partner"},
		}
		gt.False(t, cfg.Covered(model.JurisdictionUS, assignments))
		gt.False(t, cfg.Covered(model.JurisdictionHK, assignments))
	})

	t.Run("position matching is exact", func(t *testing.T) {
		assignments := []model.Assignment{
			{Jurisdiction: model.JurisdictionUS, Position: "partner"},
			{Jurisdiction: model.JurisdictionUS, Position: "Senior Partner"},
		}
		gt.False(t, cfg.Covered(model.JurisdictionUS, assignments))
	})
}

func TestCoverageConfigMissingJurisdictions(t *testing.T) {
	cfg := model.DefaultCoverageConfig()

	t.Run("no assignments misses everything in policy order", func(t *testing.T) {
		missing := cfg.MissingJurisdictions(nil)
		gt.Equal(t, missing, []string{model.JurisdictionUS, model.JurisdictionHK})
	})

	t.Run("full coverage misses nothing", func(t *testing.T) {
		assignments := []model.Assignment{
			{Jurisdiction: model.JurisdictionUS, Position: "Partner"},
			{Jurisdiction: model.JurisdictionHK, Position: "Partner"},
		}
		gt.Equal(t, len(cfg.MissingJurisdictions(assignments)), 0)
	})
}
