package prompt

import (
	"time"

	"finchat/internal/db"
	"finchat/internal/types"
)

// toPromptType converts a stored prompt into its API shape.
func toPromptType(p db.Prompt) types.Prompt {
	return types.Prompt{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Content:     p.Content,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
