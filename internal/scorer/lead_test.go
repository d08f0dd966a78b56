package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadflow/internal/model"
)

func TestScore(t *testing.T) {
	tech := []string{"Technology"}

	tests := []struct {
		name       string
		lead       model.Lead
		industries []string
		want       int
	}{
		{
			name:       "abbreviated industry and keyword title",
			lead:       model.Lead{Industry: "Tech Solutions", JobTitle: "Technology Manager"},
			industries: tech,
			want:       12,
		},
		{
			name:       "consultant title without industry match",
			lead:       model.Lead{Industry: "Retail", JobTitle: "Senior Consultant"},
			industries: tech,
			want:       5,
		},
		{
			name:       "training title",
			lead:       model.Lead{Industry: "Retail", JobTitle: "Training Lead"},
			industries: tech,
			want:       5,
		},
		{
			name:       "no match",
			lead:       model.Lead{Industry: "Retail", JobTitle: "Store Manager"},
			industries: tech,
			want:       0,
		},
		{
			name:       "substring industry match no title",
			lead:       model.Lead{Industry: "Information Technology Services"},
			industries: tech,
			want:       2,
		},
		{
			name:       "case insensitive",
			lead:       model.Lead{Industry: "HEALTHCARE", JobTitle: "healthcare ops"},
			industries: []string{"healthcare"},
			want:       12,
		},
		{
			name:       "defaults when industries empty",
			lead:       model.Lead{Industry: "Healthcare"},
			industries: nil,
			want:       2,
		},
		{
			name:       "blank labels ignored",
			lead:       model.Lead{Industry: "Retail"},
			industries: []string{"  ", ""},
			want:       0,
		},
		{
			name:       "keyword beats generic term",
			lead:       model.Lead{Industry: "Retail", JobTitle: "Technology Consultant"},
			industries: tech,
			want:       10,
		},
		{
			name:       "multi word label uses first word as keyword",
			lead:       model.Lead{Industry: "Unknown", JobTitle: "Financial Analyst"},
			industries: []string{"Financial Services"},
			want:       10,
		},
		{
			name:       "short abbreviation rejected",
			lead:       model.Lead{Industry: "Te Corp"},
			industries: tech,
			want:       0,
		},
		{
			name:       "three letter prefix rejected",
			lead:       model.Lead{Industry: "Car Dealers"},
			industries: []string{"Cardiology"},
			want:       0,
		},
		{
			name:       "leading article is not an abbreviation",
			lead:       model.Lead{Industry: "The Health Co"},
			industries: []string{"Therapy"},
			want:       0,
		},
		{
			name:       "four letter abbreviation accepted",
			lead:       model.Lead{Industry: "Health Partners"},
			industries: []string{"Healthcare"},
			want:       2,
		},
		{
			name:       "unknown industry",
			lead:       model.NewLead("", "a@x.com", "", "", 0),
			industries: tech,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.lead, tt.industries))
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	lead := model.Lead{Industry: "Tech Solutions", JobTitle: "Technology Manager"}
	industries := []string{"Technology"}

	first := Score(lead, industries)
	second := Score(lead, industries)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Technology"}, industries)
	assert.Equal(t, 0, lead.Score)
}

func TestScoreAll(t *testing.T) {
	leads := []model.Lead{
		{Name: "a", Industry: "Healthcare", Score: 9},
		{Name: "b", Industry: "Retail"},
	}

	scored := ScoreAll(leads, []string{"Healthcare"})
	assert.Equal(t, 2, scored[0].Score)
	assert.Equal(t, 0, scored[1].Score)

	// Input is not mutated.
	assert.Equal(t, 9, leads[0].Score)

	// Batch and single-lead paths agree.
	for i := range leads {
		assert.Equal(t, Score(leads[i], []string{"Healthcare"}), scored[i].Score)
	}
}
