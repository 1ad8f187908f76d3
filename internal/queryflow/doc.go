// Package queryflow runs free-text questions through the classify, dispatch,
// and format pipeline. The engine classifies the question, extracts filters,
// derives ranking weights from perceptual terms, calls the feed service, and
// renders a plain-text answer alongside a structured evidence record.
package queryflow
