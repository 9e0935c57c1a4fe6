package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// ChatHistoryLimit is how many recent turns of a session the assistant
// reads per exchange.
const ChatHistoryLimit = 10
