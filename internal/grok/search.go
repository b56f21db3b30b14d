package grok

import (
	"context"
	"fmt"
	"strings"
)

// Searcher answers the model's web_search tool calls.
type Searcher interface {
	Search(ctx context.Context, query string, numResults int) (string, error)
}

// StaticSearcher returns canned results shaped like a real search backend.
// TODO: back this with a real search API (Tavily, Exa) once one is chosen.
type StaticSearcher struct{}

func (StaticSearcher) Search(_ context.Context, query string, _ int) (string, error) {
	slug := strings.ReplaceAll(strings.ToLower(query), " ", "_")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for '%s':\n", query)
	sb.WriteString("- [Source 1] Recent news on topic: https://example-news.com/article1\n")
	fmt.Fprintf(&sb, "- [Source 2] Wikipedia summary: https://en.wikipedia.org/wiki/%s\n", slug)
	sb.WriteString("- [Source 3] Official site: https://official-source.org")
	return sb.String(), nil
}
