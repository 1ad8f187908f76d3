package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Filter is a conjunctive predicate set over feeds. Nil pointers and empty
// values mean "no constraint" for that field.
type Filter struct {
	Theater   string
	MinWidth  *int
	MinHeight *int
	MinFPS    *float64
	Codecs    []string
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.Theater == "" && f.MinWidth == nil && f.MinHeight == nil && f.MinFPS == nil && len(f.Codecs) == 0
}

// Matches reports whether the feed satisfies every present predicate. Feeds
// missing a numeric field fail any min_* predicate on that field; a feed with
// no theater never matches a non-empty theater predicate.
func (f Filter) Matches(feed Feed) bool {
	if f.Theater != "" {
		if feed.Theater == "" || !strings.Contains(strings.ToLower(feed.Theater), strings.ToLower(f.Theater)) {
			return false
		}
	}
	if f.MinWidth != nil {
		if feed.Width == nil || *feed.Width < *f.MinWidth {
			return false
		}
	}
	if f.MinHeight != nil {
		if feed.Height == nil || *feed.Height < *f.MinHeight {
			return false
		}
	}
	if f.MinFPS != nil {
		if feed.FrameRate == nil || *feed.FrameRate < *f.MinFPS {
			return false
		}
	}
	if len(f.Codecs) > 0 {
		if feed.Codec == "" {
			return false
		}
		found := false
		for _, codec := range f.Codecs {
			if strings.EqualFold(codec, feed.Codec) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Map returns the present predicates keyed by their wire names, for evidence
// payloads and request construction.
func (f Filter) Map() map[string]any {
	m := make(map[string]any)
	if f.Theater != "" {
		m["theater"] = f.Theater
	}
	if f.MinWidth != nil {
		m["min_res_w"] = *f.MinWidth
	}
	if f.MinHeight != nil {
		m["min_res_h"] = *f.MinHeight
	}
	if f.MinFPS != nil {
		m["min_fps"] = *f.MinFPS
	}
	if len(f.Codecs) > 0 {
		m["codec_in"] = append([]string{}, f.Codecs...)
	}
	return m
}

// Describe renders the present predicates as "key=value" pairs in stable
// order, for answer headers and log lines.
func (f Filter) Describe() string {
	m := f.Map()
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			parts = append(parts, k+"="+v)
		case int:
			parts = append(parts, k+"="+strconv.Itoa(v))
		case float64:
			parts = append(parts, k+"="+strconv.FormatFloat(v, 'f', -1, 64))
		case []string:
			parts = append(parts, k+"="+strings.Join(v, ","))
		}
	}
	return strings.Join(parts, " ")
}
