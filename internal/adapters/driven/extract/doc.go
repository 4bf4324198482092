// Package extract maps fetched HTML documents to raw draw strings.
//
// SelectorExtractor implements driven.FieldExtractor with a table of CSS
// selectors keyed by source ID, parsed with golang.org/x/net/html and matched
// with github.com/andybalholm/cascadia. Selectors are compiled once, when the
// extractor is built, so a typo fails at startup rather than on the first poll.
package extract
