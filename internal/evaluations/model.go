package evaluations

import (
	"encoding/json"
	"time"
)

// Result is the stored evaluation outcome for one application. The three
// score blobs are kept as the evaluator sent them, opaque to this service
// apart from the max-score enrichment done at reconcile time.
type Result struct {
	ID                    int64           `json:"id"`
	ApplicationID         int64           `json:"applicationId"`
	JobPostingID          int64           `json:"jobPostingId"`
	TotalScore            int             `json:"totalScore"`
	ResumeScores          json.RawMessage `json:"resumeEvaluations,omitempty"`
	CoverLetterScores     json.RawMessage `json:"coverLetterQuestionEvaluations,omitempty"`
	OverallEvaluation     json.RawMessage `json:"overallAnalysis,omitempty"`
	HRComment             string          `json:"hrComment,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	EvaluationCompletedAt *time.Time      `json:"evaluationCompletedAt,omitempty"`
}

// CallbackPayload is the evaluator's completed-evaluation report.
// applicationId may be absent, in which case the applicant email resolves
// the target application.
type CallbackPayload struct {
	ApplicantID                    int64                `json:"applicantId"`
	ApplicantName                  string               `json:"applicantName"`
	ApplicantEmail                 string               `json:"applicantEmail"`
	ApplicationID                  *int64               `json:"applicationId"`
	JobPostingID                   int64                `json:"jobPostingId"`
	ResumeEvaluations              []ResumeEvaluation   `json:"resumeEvaluations"`
	CoverLetterQuestionEvaluations []QuestionEvaluation `json:"coverLetterQuestionEvaluations"`
	OverallAnalysis                *OverallAnalysis     `json:"overallAnalysis"`
}

// ResumeEvaluation scores one resume item. MaxScore is filled in here from
// the posting's configuration, not by the evaluator.
type ResumeEvaluation struct {
	ResumeItemID   int64  `json:"resumeItemId"`
	ResumeItemName string `json:"resumeItemName"`
	ResumeContent  string `json:"resumeContent"`
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore,omitempty"`
}

// QuestionEvaluation is the qualitative review of one cover letter answer.
type QuestionEvaluation struct {
	CoverLetterQuestionID int64              `json:"coverLetterQuestionId"`
	Keywords              []string           `json:"keywords"`
	Summary               string             `json:"summary"`
	AnswerEvaluations     []AnswerEvaluation `json:"answerEvaluations"`
}

// AnswerEvaluation grades one criterion of a cover letter answer.
type AnswerEvaluation struct {
	EvaluationCriteriaName string `json:"evaluationCriteriaName"`
	Grade                  string `json:"grade"`
	EvaluatedContent       string `json:"evaluatedContent"`
	EvaluationReason       string `json:"evaluationReason"`
}

// OverallAnalysis is the evaluator's free-form summary of the application.
type OverallAnalysis struct {
	OverallEvaluation string   `json:"overallEvaluation"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	AIRecommendation  string   `json:"aiRecommendation"`
	AIReliability     float64  `json:"aiReliability"`
}
