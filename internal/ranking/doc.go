// Package ranking scores feeds for visual clarity. Scores combine pixel
// area, frame rate, and a codec efficiency bonus, each normalized against
// the best values present in the full catalog and blended by configurable
// weights.
package ranking
