package applications

import (
	"fmt"
	"strings"
	"time"
)

// Status is the evaluation stage of an application.
type Status string

const (
	StatusBeforeEvaluation Status = "BEFORE_EVALUATION"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusAccepted         Status = "ACCEPTED"
	StatusRejected         Status = "REJECTED"
	StatusOnHold           Status = "ON_HOLD"
)

var statuses = map[Status]struct{}{
	StatusBeforeEvaluation: {},
	StatusInProgress:       {},
	StatusAccepted:         {},
	StatusRejected:         {},
	StatusOnHold:           {},
}

// ParseStatus normalizes a status string sent by a client.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := statuses[candidate]; ok {
		return candidate, nil
	}
	return "", fmt.Errorf("unknown application status: %q", raw)
}

// Terminal reports whether the status is an HR decision. Terminal statuses
// are the only ones HR may set, and once set the evaluator can no longer
// overwrite the application.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusOnHold:
		return true
	}
	return false
}

// Applicant is a person identified by a unique email address.
type Applicant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Application is one applicant's submission to one posting, with its answers.
type Application struct {
	ID           int64     `json:"id"`
	ApplicantID  int64     `json:"applicantId"`
	JobPostingID int64     `json:"jobPostingId"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`

	Applicant     Applicant      `json:"applicant"`
	ResumeAnswers []ResumeAnswer `json:"resumeItemAnswers,omitempty"`
	EssayAnswers  []EssayAnswer  `json:"coverLetterQuestionAnswers,omitempty"`
}

// ResumeAnswer is the submitted value for one resume item.
type ResumeAnswer struct {
	ID            int64  `json:"id"`
	ResumeItemID  int64  `json:"resumeItemId"`
	ResumeContent string `json:"resumeContent"`
}

// EssayAnswer is the submitted text for one cover letter question.
type EssayAnswer struct {
	ID                    int64  `json:"id"`
	CoverLetterQuestionID int64  `json:"coverLetterQuestionId"`
	AnswerContent         string `json:"answerContent"`
}

// Statistics is the per-status application count rollup.
type Statistics struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
}
