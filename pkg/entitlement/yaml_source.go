package entitlement

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlSource loads the plan catalog from a YAML document, letting
// deployments ship the quota table as configuration instead of code.
//
// Expected shape:
//
//	plans:
//	  basic:
//	    name: Basic
//	    tier: basic
//	    limits:
//	      max_requests_per_day: 100
//	      max_input_tokens_per_day: 200000
//	      max_output_tokens_per_day: 100000
//	      max_cost_per_day_usd: 5
//	      max_context_messages: 20
type yamlSource struct {
	raw []byte
}

// NewYAMLSource returns a Source parsing the catalog from r.
// The document is read once; Load parses a fresh copy per call.
func NewYAMLSource(r io.Reader) (Source, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	return &yamlSource{raw: raw}, nil
}

type yamlCatalog struct {
	Plans map[string]yamlPlan `yaml:"plans"`
}

type yamlPlan struct {
	Name   string      `yaml:"name"`
	Tier   string      `yaml:"tier"`
	Limits QuotaVector `yaml:"limits"`
}

// Load parses the YAML document into catalog entries.
func (s *yamlSource) Load(ctx context.Context) (map[PlanKey]PlanSpec, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(s.raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[PlanKey]PlanSpec, len(doc.Plans))
	for key, p := range doc.Plans {
		tier, ok := ParseModelTier(p.Tier)
		if !ok {
			return nil, errors.Join(ErrFailedToLoadPlans,
				fmt.Errorf("plan %q: unknown model tier %q", key, p.Tier))
		}
		plans[PlanKey(key)] = PlanSpec{
			Key:    PlanKey(key),
			Name:   p.Name,
			Tier:   tier,
			Limits: p.Limits,
		}
	}
	return plans, nil
}
