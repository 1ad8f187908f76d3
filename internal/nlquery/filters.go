package nlquery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"feedscope/internal/catalog"
)

var (
	fpsPattern        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*fps`)
	dimensionsPattern = regexp.MustCompile(`(\d{3,4})\s*[xX]\s*(\d{3,4})`)
	heightPattern     = regexp.MustCompile(`(?i)(\d{3,4})p`)
)

// codecRules map codec mentions to filter families. Rules are applied in
// order and each match overwrites the previous one, so the last family
// mentioned by a later rule wins.
var codecRules = []struct {
	pattern *regexp.Regexp
	family  []string
}{
	{regexp.MustCompile(`(?i)\b(h265|hevc)\b`), []string{"H265", "HEVC"}},
	{regexp.MustCompile(`(?i)\b(h264|avc)\b`), []string{"H264", "AVC"}},
	{regexp.MustCompile(`(?i)\bav1\b`), []string{"AV1"}},
}

// Extractor pulls structured filters out of question text. The theater
// vocabulary comes from configuration so deployments can extend it without
// touching the rule tables.
type Extractor struct {
	theaters []theaterRule
}

type theaterRule struct {
	code    string
	pattern *regexp.Regexp
}

// NewExtractor compiles whole-word patterns for the given theater codes.
func NewExtractor(theaterCodes []string) *Extractor {
	rules := make([]theaterRule, 0, len(theaterCodes))
	for _, code := range theaterCodes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		rules = append(rules, theaterRule{
			code:    code,
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(code) + `\b`),
		})
	}
	return &Extractor{theaters: rules}
}

// Extract builds a catalog filter from the question. The first theater code
// found wins; an explicit WxH resolution takes precedence over a "1080p"
// shorthand, whose width is derived assuming a 16:9 aspect ratio.
func (e *Extractor) Extract(question string) catalog.Filter {
	var f catalog.Filter

	for _, rule := range e.theaters {
		if rule.pattern.MatchString(question) {
			f.Theater = rule.code
			break
		}
	}

	if m := fpsPattern.FindStringSubmatch(question); m != nil {
		if fps, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinFPS = &fps
		}
	}

	if m := dimensionsPattern.FindStringSubmatch(question); m != nil {
		w, werr := strconv.Atoi(m[1])
		h, herr := strconv.Atoi(m[2])
		if werr == nil && herr == nil {
			f.MinWidth = &w
			f.MinHeight = &h
		}
	} else if m := heightPattern.FindStringSubmatch(question); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			w := h * 16 / 9
			f.MinWidth = &w
			f.MinHeight = &h
		}
	}

	for _, rule := range codecRules {
		if rule.pattern.MatchString(question) {
			f.Codecs = append([]string(nil), rule.family...)
		}
	}

	return f
}

// String implements fmt.Stringer for log lines.
func (e *Extractor) String() string {
	codes := make([]string, len(e.theaters))
	for i, rule := range e.theaters {
		codes[i] = rule.code
	}
	return fmt.Sprintf("extractor(theaters=%s)", strings.Join(codes, ","))
}
