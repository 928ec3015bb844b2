package external

import (
	"context"

	"github.com/oksasatya/heart-api/internal/application"
)

// PlaceholderResearch returns two static suggestions for any query.
type PlaceholderResearch struct{}

func (PlaceholderResearch) Suggest(_ context.Context, query string) (*application.ResearchResult, error) {
	return &application.ResearchResult{
		Query: query,
		Suggestions: []application.Suggestion{
			{
				Title:    "Related Research Paper 1",
				Authors:  "Smith J, Doe A",
				Year:     2023,
				Source:   "PubMed",
				Abstract: "Abstract preview...",
			},
			{
				Title:    "Related Research Paper 2",
				Authors:  "Johnson M, Williams K",
				Year:     2024,
				Source:   "Zotero",
				Abstract: "Abstract preview...",
			},
		},
		Provider: "placeholder",
		Mock:     true,
	}, nil
}
