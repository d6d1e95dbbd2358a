package evaluator

// Payload shapes match the evaluator's ingestion schemas. Field names are
// part of the wire contract; resume item types travel by enum name.

// CriteriaPayload teaches the evaluator a posting's grading configuration.
type CriteriaPayload struct {
	JobPostingID          int64                `json:"jobPostingId"`
	Title                 string               `json:"title"`
	CompanyName           string               `json:"companyName"`
	JobRole               string               `json:"jobRole"`
	TotalScore            int                  `json:"totalScore"`
	PassingScore          int                  `json:"passingScore"`
	AIAutomaticEvaluation bool                 `json:"aiAutomaticEvaluation"`
	ManualReview          bool                 `json:"manualReview"`
	Timestamp             int64                `json:"timestamp"`
	ResumeItems           []CriteriaResumeItem `json:"resumeItems"`
	CoverLetterQuestions  []CriteriaQuestion   `json:"coverLetterQuestions"`
}

// CriteriaResumeItem summarizes one gradable resume item.
type CriteriaResumeItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	MaxScore   int    `json:"maxScore"`
	IsRequired bool   `json:"isRequired"`
}

// CriteriaQuestion summarizes one cover letter question.
type CriteriaQuestion struct {
	ID            int64  `json:"id"`
	Content       string `json:"content"`
	MaxCharacters int    `json:"maxCharacters"`
	IsRequired    bool   `json:"isRequired"`
}

// SubmissionPayload sends one application for scoring.
type SubmissionPayload struct {
	ApplicantID                int64                    `json:"applicantId"`
	ApplicantName              string                   `json:"applicantName"`
	ApplicantEmail             string                   `json:"applicantEmail"`
	ApplicationID              int64                    `json:"applicationId"`
	JobPostingID               int64                    `json:"jobPostingId"`
	ResumeItemAnswers          []SubmissionResumeAnswer `json:"resumeItemAnswers"`
	CoverLetterQuestionAnswers []SubmissionEssayAnswer  `json:"coverLetterQuestionAnswers"`
}

// SubmissionResumeAnswer is one submitted resume field value.
type SubmissionResumeAnswer struct {
	ResumeItemID   int64  `json:"resumeItemId"`
	ResumeItemName string `json:"resumeItemName"`
	ResumeContent  string `json:"resumeContent"`
}

// SubmissionEssayAnswer is one submitted cover letter answer.
type SubmissionEssayAnswer struct {
	CoverLetterQuestionID int64  `json:"coverLetterQuestionId"`
	QuestionContent       string `json:"questionContent"`
	AnswerContent         string `json:"answerContent"`
}
