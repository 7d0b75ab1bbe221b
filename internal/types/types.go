package types

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Auth

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

// Chat

type ChatRequest struct {
	Message  string `json:"message"`
	Model    string `json:"model,omitempty"`
	PromptId string `json:"prompt_id,omitempty"`
}

type ChatMessage struct {
	Id        string `json:"id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	UserId    string `json:"user_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ClearResponse struct {
	Status string `json:"status"`
}

// Prompts

type Prompt struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type GetPromptRequest struct {
	Id string `path:"id"`
}

type CreatePromptRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type UpdatePromptRequest struct {
	Id          string `path:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

type DeletePromptRequest struct {
	Id string `path:"id"`
}

type DeletePromptResponse struct {
	Success bool `json:"success"`
}

type SelectPromptRequest struct {
	PromptId string `json:"prompt_id"`
}

type SelectPromptResponse struct {
	Selected string `json:"selected"`
}

// Financial

type FinancialSubmitRequest struct {
	CifId   string `json:"cif_id,omitempty"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

type FinancialStrategy struct {
	CurrentAnalysis string `json:"current_analysis"`
	Strategy1       string `json:"strategy_1"`
	Strategy2       string `json:"strategy_2"`
	Strategy3       string `json:"strategy_3"`
}

type FinancialSubmitResponse struct {
	GeneratedAt string            `json:"generated_at"`
	Strategy    FinancialStrategy `json:"strategy"`
}

type GetStrategyResponse struct {
	GeneratedAt string            `json:"generated_at"`
	Strategy    FinancialStrategy `json:"strategy"`
}

type CRMDataRequest struct {
	CifId string `path:"cif_id"`
}

type LifeplanRequest struct {
	CifId   string `json:"cif_id,omitempty"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

type LifeplanResponse struct {
	GeneratedAt string `json:"generated_at"`
	Plan        string `json:"plan"`
}
