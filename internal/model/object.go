package model

// AccessToken is the payload of tokens issued by the auth service.
type AccessToken struct {
	ID string `json:"id"`
}

type Assignment struct {
	GroupID    string `json:"group_id"`
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
	Revealed   bool   `json:"revealed"`
	CreatedAt  string `json:"created_at"`
}

type Exclusion struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	MemberAID string `json:"member_a_id"`
	MemberBID string `json:"member_b_id"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// DrawPerformedEvent is published after every successful draw.
type DrawPerformedEvent struct {
	EventID     string   `json:"event_id"`
	GroupID     string   `json:"group_id"`
	MemberIDs   []string `json:"member_ids"`
	PerformedBy string   `json:"performed_by"`
	PerformedAt string   `json:"performed_at"`
}
