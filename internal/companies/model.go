package companies

import "time"

// Company owns job postings. Created once during onboarding, rarely mutated.
type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
