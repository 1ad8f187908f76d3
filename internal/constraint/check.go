package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"feedscope/internal/catalog"
)

// Severity grades a constraint finding.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Issue is one finding for one feed.
type Issue struct {
	FeedID   string   `json:"feed_id"`
	Kind     string   `json:"kind"`
	Detail   string   `json:"detail"`
	Severity Severity `json:"severity"`
}

const (
	KindResolutionCap = "resolution_cap"
	KindCodecUnknown  = "codec_unknown"
	KindFPSHigh       = "fps_high"
)

// codecAllowlist is the set of codecs the decoder is known to handle.
// Anything else gets a warning rather than an error since support may exist
// but is unverified.
var codecAllowlist = []string{"AVC", "H264", "H265", "HEVC"}

// highFPSThreshold is the frame rate above which decode timing gets tight.
const highFPSThreshold = 60.0

// Check evaluates each feed against the decoder record and returns findings
// in feed order, rule order within a feed. Missing resolution caps mean the
// decoder is unbounded in that dimension.
func Check(feeds []catalog.Feed, dec catalog.DecoderParams) []Issue {
	capW := maxInt
	if dec.CapMaxResW != nil && *dec.CapMaxResW > 0 {
		capW = *dec.CapMaxResW
	}
	capH := maxInt
	if dec.CapMaxResH != nil && *dec.CapMaxResH > 0 {
		capH = *dec.CapMaxResH
	}

	var issues []Issue
	for _, feed := range feeds {
		if feed.Width != nil && feed.Height != nil && (*feed.Width > capW || *feed.Height > capH) {
			issues = append(issues, Issue{
				FeedID:   feed.ID,
				Kind:     KindResolutionCap,
				Detail:   fmt.Sprintf("%dx%d exceeds decoder cap %dx%d", *feed.Width, *feed.Height, capW, capH),
				Severity: SeverityError,
			})
		}

		codec := strings.ToUpper(feed.Codec)
		if codec != "" && !allowedCodec(codec) {
			issues = append(issues, Issue{
				FeedID:   feed.ID,
				Kind:     KindCodecUnknown,
				Detail:   fmt.Sprintf("Codec %s not in allowlist [%s]. Verify support.", codec, strings.Join(codecAllowlist, " ")),
				Severity: SeverityWarn,
			})
		}

		if fps := feed.FPS(); fps > highFPSThreshold {
			issues = append(issues, Issue{
				FeedID:   feed.ID,
				Kind:     KindFPSHigh,
				Detail:   strconv.FormatFloat(fps, 'f', -1, 64) + " fps may require tighter jitter buffer or reorder settings.",
				Severity: SeverityWarn,
			})
		}
	}
	return issues
}

func allowedCodec(codec string) bool {
	for _, c := range codecAllowlist {
		if c == codec {
			return true
		}
	}
	return false
}

const maxInt = int(^uint(0) >> 1)
