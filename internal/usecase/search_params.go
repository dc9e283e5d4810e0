package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akinankarali/upwork-job-api/internal/search"
)

// Inbound parameter names of GET /search.
const (
	ParamQuery          = "query"
	ParamJobType        = "job_type"
	ParamExperience     = "experience"
	ParamDuration       = "duration"
	ParamRateMin        = "rate_min"
	ParamRateMax        = "rate_max"
	ParamWorkload       = "workload"
	ParamClientHires    = "client_hires"
	ParamContractToHire = "contract_to_hire"
)

// SearchParamNames lists every recognized inbound parameter.
var SearchParamNames = []string{
	ParamQuery,
	ParamJobType,
	ParamExperience,
	ParamDuration,
	ParamRateMin,
	ParamRateMax,
	ParamWorkload,
	ParamClientHires,
	ParamContractToHire,
}

// RawParams maps parameter names to caller values. Missing keys and empty
// values are both treated as absent.
type RawParams map[string]string

func (p RawParams) lookup(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p RawParams) optional(key string) *string {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}
	return &v
}

func (p RawParams) optionalInt(key string) (*int, error) {
	v, ok := p.lookup(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidInput, key, v)
	}
	return &n, nil
}

// ParseFilterSet converts raw request parameters into a FilterSet.
func ParseFilterSet(raw RawParams) (search.FilterSet, error) {
	rateMin, err := raw.optionalInt(ParamRateMin)
	if err != nil {
		return search.FilterSet{}, err
	}
	rateMax, err := raw.optionalInt(ParamRateMax)
	if err != nil {
		return search.FilterSet{}, err
	}

	var cth *bool
	if v, ok := raw.lookup(ParamContractToHire); ok {
		b := strings.EqualFold(v, "true")
		cth = &b
	}

	query, _ := raw.lookup(ParamQuery)

	return search.NewFilterSet(search.FilterOptions{
		Query:           query,
		JobType:         raw.optional(ParamJobType),
		ExperienceLevel: raw.optional(ParamExperience),
		Duration:        raw.optional(ParamDuration),
		Workload:        raw.optional(ParamWorkload),
		ClientHires:     raw.optional(ParamClientHires),
		HourlyRateMin:   rateMin,
		HourlyRateMax:   rateMax,
		ContractToHire:  cth,
	}), nil
}
