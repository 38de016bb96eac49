// Package markdown loads MDX and Markdown content files: it splits YAML front
// matter from the body, renders bodies with goldmark, and derives plain text
// for search and excerpts.
package markdown
