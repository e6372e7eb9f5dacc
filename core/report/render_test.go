package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekta-foundation/casebook/core"
)

func rows(n int, remark string) []Row {
	out := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Row{
			Name:        fmt.Sprintf("Sub task %d", i+1),
			Score:       core.IntPtr(i % 6),
			Description: remark,
		})
	}
	return out
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer("test")
	art, err := r.Render(RenderInput{
		Title:        "Student Progress Report",
		EnrollmentID: "enr-1",
		StudentName:  "Asha Verma",
		ReportDate:   "2025-03-10",
		WeekNumber:   2,
		Sections: []Section{
			{Title: "Expressive Language", Rows: []Row{
				{Name: "Requests Objects", Score: core.IntPtr(5)},
				{Name: "Names Pictures", Score: core.IntPtr(4), Description: "Needed  two\nprompts"},
				{Name: "Not scored"},
			}},
		},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
	assert.Equal(t, 1, art.Pages)
	assert.Equal(t, 9, art.TotalScore)
	assert.Equal(t, 2, art.Scored)
	assert.Equal(t, RatingExcellent, art.Rating)
}

func TestRenderer_Render_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		sections  []Section
		wantPages int
		// page of every column header band, in drawing order
		wantColumnBands []int
	}{
		{
			name:      "empty",
			wantPages: 1,
		},
		{
			name:            "20 plain rows fit one page",
			sections:        []Section{{Title: "A", Rows: rows(20, "")}},
			wantPages:       1,
			wantColumnBands: []int{1},
		},
		{
			name:            "20 rows with remarks overflow",
			sections:        []Section{{Title: "A", Rows: rows(20, "Prompted")}},
			wantPages:       2,
			wantColumnBands: []int{1, 2},
		},
		{
			name: "many sections",
			sections: []Section{
				{Title: "A", Rows: rows(25, "")},
				{Title: "B", Rows: rows(25, "")},
				{Title: "C", Rows: rows(25, "")},
			},
			wantPages: 3,
			// C starts at the bottom of page 2 and its rows continue on page 3
			wantColumnBands: []int{1, 2, 2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bands []int
			r := NewRenderer("test")
			r.onColumnBand = func(page int) { bands = append(bands, page) }

			art, err := r.Render(RenderInput{Title: "Report", Sections: tt.sections})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, art.Pages)
			assert.Equal(t, tt.wantColumnBands, bands)
		})
	}
}

func TestRenderer_Render_LongText(t *testing.T) {
	r := NewRenderer("test")
	art, err := r.Render(RenderInput{
		Title:       strings.Repeat("Very long title ", 20),
		StudentName: "Zoë Ñúñez",
		Sections: []Section{{
			Title: strings.Repeat("Category ", 40),
			Rows:  []Row{{Name: strings.Repeat("name ", 60), Score: core.IntPtr(2), Description: strings.Repeat("remark ", 60)}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, art.Pages)
	assert.Equal(t, RatingSatisfactory, art.Rating)
}
