package dto

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SendChatRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message"`
}

type SendChatResponse struct {
	SessionId string `json:"session_id"`
	Response  string `json:"response"`
	// OffTopic marks a gate redirect. Still a success, not an error.
	OffTopic    bool `json:"off_topic"`
	SourcesUsed int  `json:"sources_used"`
}
