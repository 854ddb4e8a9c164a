package model

type AddExclusionRequest struct {
	GroupID   string `json:"group_id"`
	MemberAID string `json:"member_a_id"`
	MemberBID string `json:"member_b_id"`
}

type AddExclusionResponse struct {
	ID string `json:"id"`
}

type RemoveExclusionRequest struct {
	ID string `json:"id"`
}

type RemoveExclusionResponse struct{}

type GetExclusionsRequest struct {
	GroupID string `json:"group_id" form:"group_id"`
}

type GetExclusionsResponse struct {
	Exclusions []Exclusion `json:"exclusions"`
}
