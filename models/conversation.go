package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in a chat transcript.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered chat history of one session.
type Transcript []ChatTurn

// Clone returns a copy that shares no backing array with t.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// AppendPair returns a new transcript with the prompt and the reply appended
// as one user/assistant pair. t itself is not modified.
func (t Transcript) AppendPair(prompt, reply string) Transcript {
	out := make(Transcript, len(t), len(t)+2)
	copy(out, t)
	return append(out,
		ChatTurn{Role: RoleUser, Content: prompt},
		ChatTurn{Role: RoleAssistant, Content: reply},
	)
}
