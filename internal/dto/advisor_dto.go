package dto

type ChatTurnDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// AttachedFileDTO carries text already extracted on the client or by a previous upload.
type AttachedFileDTO struct {
	Name    string `json:"name" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type AdvisorChatRequest struct {
	Message string            `json:"message" validate:"required,max=4000"`
	History []ChatTurnDTO     `json:"history,omitempty" validate:"max=20,dive"`
	Files   []AttachedFileDTO `json:"files,omitempty" validate:"max=3,dive"`
}

type AdvisorChatResponse struct {
	Reply     string   `json:"reply"`
	Blocked   bool     `json:"blocked"`
	Topic     string   `json:"topic,omitempty"`
	HighValue bool     `json:"high_value"`
	Model     string   `json:"model,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

type AdvisorContextResponse struct {
	Blocked        bool     `json:"blocked"`
	RefusalMessage string   `json:"refusal_message,omitempty"`
	SystemPrompt   string   `json:"system_prompt,omitempty"`
	Context        string   `json:"context,omitempty"`
	Topic          string   `json:"topic,omitempty"`
	HighValue      bool     `json:"high_value"`
	Sources        []string `json:"sources,omitempty"`
	BlockedFiles   []string `json:"blocked_files,omitempty"`
}

type ModerateRequest struct {
	Content     string `json:"content" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=message file_content dalle_prompt file_upload"`
}

type ModerateResponse struct {
	Allowed           bool               `json:"allowed"`
	FlaggedCategories []string           `json:"flagged_categories,omitempty"`
	CategoryScores    map[string]float64 `json:"category_scores,omitempty"`
	UserFacingMessage string             `json:"user_facing_message,omitempty"`
	ProviderAvailable bool               `json:"provider_available"`
}
