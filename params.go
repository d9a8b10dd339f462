package relay42

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxProperties is the number of cup parameters the collector accepts per
// request. Entries beyond it are dropped without error.
const maxProperties = 32

// param is a single query parameter. The collector documents an exact
// parameter order, so parameters travel as an ordered slice; url.Values
// cannot express that (its Encode sorts by key).
type param struct {
	key   string
	value string
}

// cachebuster returns the milliseconds since the Unix epoch as a decimal
// string, evaluated fresh for every request so repeated sends defeat
// intermediate HTTP caches. Collisions within one millisecond are fine.
func cachebuster() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// engagementParams maps an engagement onto the collector's query shape:
// i, e=true, et, cb, then one cup per property.
func engagementParams(e Engagement, cb string) []param {
	ps := make([]param, 0, 4+len(e.Properties))
	ps = append(ps,
		param{"i", e.UUID},
		param{"e", "true"},
		param{"et", e.Type},
		param{"cb", cb},
	)
	return appendProperties(ps, e.Properties)
}

// factParams maps a fact onto i, f=true, ft, fttl, cb, then one cup per
// property. TTLSeconds travels verbatim, zero and negative included; the
// collector decides what those mean.
func factParams(f Fact, cb string) []param {
	ps := make([]param, 0, 5+len(f.Properties))
	ps = append(ps,
		param{"i", f.UUID},
		param{"f", "true"},
		param{"ft", f.Type},
		param{"fttl", strconv.Itoa(f.TTLSeconds)},
		param{"cb", cb},
	)
	return appendProperties(ps, f.Properties)
}

// mappingParams maps an identity mapping onto ca_site, ca_partner,
// ca_cookie, pid, cb, ca_merge. partnerID must already be resolved; see
// (*Client).SyncMapping.
func mappingParams(m Mapping, siteID, partnerID, cb string) []param {
	merge := "1"
	if m.Merge != nil && !*m.Merge {
		merge = "0"
	}
	return []param{
		{"ca_site", siteID},
		{"ca_partner", partnerID},
		{"ca_cookie", m.UUID},
		{"pid", m.ProfileID},
		{"cb", cb},
		{"ca_merge", merge},
	}
}

// appendProperties flattens up to maxProperties entries into
// cup=<key>:<value> parameters. Map iteration order decides which entries
// survive on oversized maps; the collector treats cup as an unordered set.
func appendProperties(ps []param, props map[string]string) []param {
	n := 0
	for k, v := range props {
		if n == maxProperties {
			break
		}
		ps = append(ps, param{"cup", k + ":" + v})
		n++
	}
	return ps
}

// encodeQuery percent-encodes the parameter list in order. Each cup value is
// escaped as one token, so the key:value separator arrives as %3A along with
// any colon embedded in either side.
func encodeQuery(params []param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
