// Package nlquery turns free-text questions into structured query plans.
// Classification and extraction are rule driven: ordered keyword tables pick
// an intent, regular expressions lift theater, resolution, frame rate, and
// codec predicates out of the question, and perceptual terms map to ranking
// weight presets.
package nlquery
