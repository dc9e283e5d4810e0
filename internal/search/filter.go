package search

import "strings"

// DefaultQuery is used when a request carries no search text.
const DefaultQuery = "python"

// FilterOptions carries the recognized search dimensions. A nil pointer
// (or a pointer to an empty string) means the dimension is absent.
type FilterOptions struct {
	Query           string
	JobType         *string
	ExperienceLevel *string
	Duration        *string
	Workload        *string
	ClientHires     *string
	HourlyRateMin   *int
	HourlyRateMax   *int
	ContractToHire  *bool
}

// FilterSet is an immutable set of search dimensions for one request.
type FilterSet struct {
	query           string
	jobType         string
	experienceLevel string
	duration        string
	workload        string
	clientHires     string
	hourlyRateMin   *int
	hourlyRateMax   *int
	contractToHire  *bool
}

// NewFilterSet copies opts into a FilterSet. Vocabulary values are passed
// through untouched and rate bounds are not cross-checked.
func NewFilterSet(opts FilterOptions) FilterSet {
	q := strings.TrimSpace(opts.Query)
	if q == "" {
		q = DefaultQuery
	}
	return FilterSet{
		query:           q,
		jobType:         deref(opts.JobType),
		experienceLevel: deref(opts.ExperienceLevel),
		duration:        deref(opts.Duration),
		workload:        deref(opts.Workload),
		clientHires:     deref(opts.ClientHires),
		hourlyRateMin:   copyInt(opts.HourlyRateMin),
		hourlyRateMax:   copyInt(opts.HourlyRateMax),
		contractToHire:  copyBool(opts.ContractToHire),
	}
}

func (f FilterSet) Query() string { return f.query }

func (f FilterSet) JobType() (string, bool)         { return f.jobType, f.jobType != "" }
func (f FilterSet) ExperienceLevel() (string, bool) { return f.experienceLevel, f.experienceLevel != "" }
func (f FilterSet) Duration() (string, bool)        { return f.duration, f.duration != "" }
func (f FilterSet) Workload() (string, bool)        { return f.workload, f.workload != "" }
func (f FilterSet) ClientHires() (string, bool)     { return f.clientHires, f.clientHires != "" }

func (f FilterSet) HourlyRateMin() (int, bool) {
	if f.hourlyRateMin == nil {
		return 0, false
	}
	return *f.hourlyRateMin, true
}

func (f FilterSet) HourlyRateMax() (int, bool) {
	if f.hourlyRateMax == nil {
		return 0, false
	}
	return *f.hourlyRateMax, true
}

func (f FilterSet) ContractToHire() (bool, bool) {
	if f.contractToHire == nil {
		return false, false
	}
	return *f.contractToHire, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
