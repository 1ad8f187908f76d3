// Package constraint checks selected feeds against decoder capabilities and
// flags streams the configured decoder may struggle with.
package constraint
