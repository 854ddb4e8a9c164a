package model

type PerformDrawRequest struct {
	GroupID string `json:"group_id"`
}

type PerformDrawResponse struct {
	AssignmentCount int   `json:"assignment_count"`
	DrawVersion     int64 `json:"draw_version"`
}

type EndDrawRequest struct {
	GroupID string `json:"group_id"`
}

type EndDrawResponse struct {
	DrawVersion int64 `json:"draw_version"`
}

type GetMyAssignmentRequest struct {
	GroupID string `json:"group_id" form:"group_id"`
}

type GetMyAssignmentResponse struct {
	Assignment Assignment `json:"assignment"`
}

type GetMyAssignmentsRequest struct{}

type GetMyAssignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
}

type GetDrawStatusRequest struct {
	GroupID string `json:"group_id" form:"group_id"`
}

type GetDrawStatusResponse struct {
	IsDrawActive    bool  `json:"is_draw_active"`
	AssignmentCount int64 `json:"assignment_count"`
	DrawVersion     int64 `json:"draw_version"`
}

type RevealAssignmentRequest struct {
	GroupID string `json:"group_id"`
}

type RevealAssignmentResponse struct{}
