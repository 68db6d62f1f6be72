package driven

// Prompt names used with PromptStore.
const (
	// PromptAskSystem is the system prompt for grounded question answering.
	PromptAskSystem = "ask_system"
)

// PromptStore loads prompt templates for LLM features.
// Implementations may read user-editable files with embedded fallbacks.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
