package message

// Message is a post made by an account. PostedBy references the authoring
// account and never changes after creation; only the text is mutable.
type Message struct {
	ID          int64  `json:"message_id"`
	PostedBy    int64  `json:"posted_by"`
	Text        string `json:"message_text"`
	PostedEpoch int64  `json:"time_posted_epoch"`
}
