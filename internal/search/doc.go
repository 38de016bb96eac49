// Package search flattens the content catalog into uniform Result records and
// answers free-text queries over them: ranking, highlighting and spelling
// suggestions. Everything here is in-memory and read-only once built.
package search
