package trials

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTruncatesToFiveButReportsRealTotal(t *testing.T) {
	result := &SearchResult{Total: 42}
	for i := 1; i <= 8; i++ {
		result.Trials = append(result.Trials, Trial{
			Title:      fmt.Sprintf("Trial %d", i),
			Status:     "Recruiting",
			Phase:      "Phase 1",
			Conditions: []string{"Asthma"},
			Sponsor:    "Acme",
		})
	}

	out := Render(result)

	assert.Contains(t, out, "I found 42 trials")
	assert.Contains(t, out, "**5. Trial 5**")
	assert.NotContains(t, out, "Trial 6")
	assert.Equal(t, 5, strings.Count(out, "- **Status:**"))
}

func TestRenderMissingOptionalFields(t *testing.T) {
	result := &SearchResult{
		Total: 1,
		Trials: []Trial{{
			Title:      "Registry Study",
			Status:     "Completed",
			Conditions: []string{"Lupus"},
		}},
	}

	out := Render(result)

	assert.Contains(t, out, "- **Phase:** N/A")
	assert.Contains(t, out, "- **Sponsor:** N/A")
	assert.Contains(t, out, "- **Conditions:** Lupus")
}

func TestRenderZeroHits(t *testing.T) {
	assert.Equal(t, NoResultsMessage, Render(&SearchResult{Total: 0}))
	assert.Equal(t, NoResultsMessage, Render(nil))
}
