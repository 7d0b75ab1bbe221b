package financial

import (
	"fmt"
	"strings"

	"finchat/internal/types"
)

var sectionHeaders = []string{"current_analysis", "strategy_1", "strategy_2", "strategy_3"}

// extractSections splits the proposal text into its four bracketed
// sections. Every header must be present; section order in the text
// does not matter.
func extractSections(text string) (types.FinancialStrategy, error) {
	found := map[string]string{}

	for _, header := range sectionHeaders {
		marker := "[" + header + "]"
		start := strings.Index(text, marker)
		if start < 0 {
			return types.FinancialStrategy{}, fmt.Errorf("proposal missing section %s", marker)
		}
		body := text[start+len(marker):]

		// The section runs until the next header or end of text.
		end := len(body)
		for _, other := range sectionHeaders {
			if other == header {
				continue
			}
			if i := strings.Index(body, "["+other+"]"); i >= 0 && i < end {
				end = i
			}
		}
		found[header] = strings.TrimSpace(body[:end])
	}

	return types.FinancialStrategy{
		CurrentAnalysis: found["current_analysis"],
		Strategy1:       found["strategy_1"],
		Strategy2:       found["strategy_2"],
		Strategy3:       found["strategy_3"],
	}, nil
}
