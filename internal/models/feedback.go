package models

// Feedback: отзыв клиента о выполненной заявке.
type Feedback struct {
	ID                        string     `json:"_id" validate:"required"`
	UserID                    *PersonRef `json:"userId,omitempty"`
	AssignedTechnicianID      *PersonRef `json:"assignedTechnicianId,omitempty"`
	Rating                    int        `json:"rating" validate:"min=0,max=5"`
	ServiceSatisfaction       int        `json:"serviceSatisfaction,omitempty"`
	TechnicianProfessionalism int        `json:"technicianProfessionalism,omitempty"`
	IssueResolved             bool       `json:"issueResolved"`
	TextReview                string     `json:"textReview,omitempty"`
	CreatedAt                 string     `json:"createdAt,omitempty"`
}

// FeedbackPage: конверт постраничного ответа GET /api/feedback.
type FeedbackPage struct {
	Feedbacks  []Feedback `json:"feedbacks" validate:"dive"`
	TotalPages int        `json:"totalPages" validate:"min=0"`
	TotalCount int        `json:"totalCount" validate:"min=0"`
}
