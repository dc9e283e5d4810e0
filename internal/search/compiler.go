package search

import (
	"net/url"
	"strconv"
	"strings"
)

const BaseURL = "https://www.upwork.com/nx/jobs/search/"

type param struct {
	key   string
	value string
}

// pairs lists present dimensions in the canonical key order.
func pairs(f FilterSet) []param {
	out := make([]param, 0, 9)
	out = append(out, param{"q", f.Query()})
	if v, ok := f.ExperienceLevel(); ok {
		out = append(out, param{"experience_level", v})
	}
	if v, ok := f.JobType(); ok {
		out = append(out, param{"job_type", v})
	}
	if v, ok := f.Duration(); ok {
		out = append(out, param{"duration", v})
	}
	if v, ok := f.HourlyRateMin(); ok {
		out = append(out, param{"hourly_rate_min", strconv.Itoa(v)})
	}
	if v, ok := f.HourlyRateMax(); ok {
		out = append(out, param{"hourly_rate_max", strconv.Itoa(v)})
	}
	if v, ok := f.Workload(); ok {
		out = append(out, param{"workload", v})
	}
	if v, ok := f.ClientHires(); ok {
		out = append(out, param{"client_hires", v})
	}
	if v, ok := f.ContractToHire(); ok {
		out = append(out, param{"contract_to_hire", strconv.FormatBool(v)})
	}
	return out
}

// Compile serializes f into an absolute search URL. Keys are emitted in a
// fixed order so equal filter sets produce byte-identical URLs.
func Compile(f FilterSet) string {
	var b strings.Builder
	b.WriteString(BaseURL)
	b.WriteByte('?')
	for i, p := range pairs(f) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Params returns the same key/value pairs Compile encodes.
func Params(f FilterSet) url.Values {
	v := url.Values{}
	for _, p := range pairs(f) {
		v.Set(p.key, p.value)
	}
	return v
}
