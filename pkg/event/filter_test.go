package event

import (
	"testing"

	"github.com/dhis2-sre/im-events/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	events := []model.Event{
		{ID: 1, Title: "Go Meetup", CategoryIDs: []uint{1, 2}},
		{ID: 2, Title: "Jazz night", CategoryIDs: []uint{3}},
		{ID: 3, Title: "gopher party", CategoryIDs: []uint{2}},
	}

	tests := map[string]struct {
		searchQuery    string
		filterCategory string
		want           []uint
	}{
		"NoFilter": {
			want: []uint{1, 2, 3},
		},
		"SearchIgnoresCase": {
			searchQuery: "GO",
			want:        []uint{1, 3},
		},
		"SearchWithoutMatch": {
			searchQuery: "opera",
			want:        []uint{},
		},
		"Category": {
			filterCategory: "2",
			want:           []uint{1, 3},
		},
		"SearchAndCategory": {
			searchQuery:    "meetup",
			filterCategory: "2",
			want:           []uint{1},
		},
		"CategoryWithSurroundingSpace": {
			filterCategory: " 2 ",
			want:           []uint{1, 3},
		},
		"CategoryWithDecimalZero": {
			filterCategory: "2.0",
			want:           []uint{1, 3},
		},
		"CategoryWithFraction": {
			filterCategory: "2.5",
			want:           []uint{},
		},
		"CategoryWhichIsNotAnID": {
			filterCategory: "music",
			want:           []uint{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			filtered := Filter(events, test.searchQuery, test.filterCategory)

			ids := make([]uint, len(filtered))
			for i, event := range filtered {
				ids[i] = event.ID
			}
			assert.Equal(t, test.want, ids)
		})
	}
}

func TestSummarize(t *testing.T) {
	events := []model.Event{
		{ID: 4, Title: "With image", Image: "https://example.com/a.png", StartTime: "2024-05-01T10:00", EndTime: "2024-05-01T12:00"},
		{ID: 5, Title: "Without image"},
	}

	summaries := Summarize(events, "https://example.com/placeholder.png")

	require.Len(t, summaries, 2)
	assert.Equal(t, Summary{
		ID:        4,
		Title:     "With image",
		Image:     "https://example.com/a.png",
		StartTime: "2024-05-01T10:00",
		EndTime:   "2024-05-01T12:00",
		Path:      "/event/4",
	}, summaries[0])
	assert.Equal(t, "https://example.com/placeholder.png", summaries[1].Image)
	assert.Equal(t, "/event/5", summaries[1].Path)
}
