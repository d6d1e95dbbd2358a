package postings

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle stage of a job posting, derived from its dates.
type Status string

const (
	StatusScheduled          Status = "SCHEDULED"
	StatusInProgress         Status = "IN_PROGRESS"
	StatusClosed             Status = "CLOSED"
	StatusEvaluationComplete Status = "EVALUATION_COMPLETE"
)

// ItemType is the closed set of resume item input types.
type ItemType string

const (
	ItemTypeNumber         ItemType = "NUMBER"
	ItemTypeDate           ItemType = "DATE"
	ItemTypeFile           ItemType = "FILE"
	ItemTypeText           ItemType = "TEXT"
	ItemTypeCategory       ItemType = "CATEGORY"
	ItemTypeNumericRange   ItemType = "NUMERIC_RANGE"
	ItemTypeRuleBasedCount ItemType = "RULE_BASED_COUNT"
	ItemTypeScoreRange     ItemType = "SCORE_RANGE"
	ItemTypeDurationBased  ItemType = "DURATION_BASED"
	ItemTypeHoursRange     ItemType = "HOURS_RANGE"
)

var itemTypes = map[ItemType]struct{}{
	ItemTypeNumber:         {},
	ItemTypeDate:           {},
	ItemTypeFile:           {},
	ItemTypeText:           {},
	ItemTypeCategory:       {},
	ItemTypeNumericRange:   {},
	ItemTypeRuleBasedCount: {},
	ItemTypeScoreRange:     {},
	ItemTypeDurationBased:  {},
	ItemTypeHoursRange:     {},
}

// ParseItemType normalizes a resume item type string. The frontend and the
// evaluator both send variants like "numeric_range" or "NumericRange".
func ParseItemType(raw string) (ItemType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	candidate := ItemType(normalized)
	if _, ok := itemTypes[candidate]; ok {
		return candidate, nil
	}
	compact := strings.ReplaceAll(normalized, "_", "")
	for t := range itemTypes {
		if strings.ReplaceAll(string(t), "_", "") == compact {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown resume item type: %q", raw)
}

// JobPosting is a job opening with milestone dates and scoring configuration.
type JobPosting struct {
	ID                     int64      `json:"id"`
	CompanyID              int64      `json:"companyId"`
	Title                  string     `json:"title"`
	TeamDepartment         string     `json:"teamDepartment,omitempty"`
	JobRole                string     `json:"jobRole,omitempty"`
	EmploymentType         string     `json:"employmentType,omitempty"`
	ApplicationStartDate   *time.Time `json:"applicationStartDate,omitempty"`
	ApplicationEndDate     *time.Time `json:"applicationEndDate,omitempty"`
	EvaluationEndDate      *time.Time `json:"evaluationEndDate,omitempty"`
	Description            string     `json:"description,omitempty"`
	ExperienceRequirements string     `json:"experienceRequirements,omitempty"`
	EducationRequirements  string     `json:"educationRequirements,omitempty"`
	RequiredSkills         string     `json:"requiredSkills,omitempty"`
	TotalScore             int        `json:"totalScore"`
	ResumeScoreWeight      int        `json:"resumeScoreWeight"`
	CoverLetterScoreWeight int        `json:"coverLetterScoreWeight"`
	PassingScore           int        `json:"passingScore"`
	AIAutomaticEvaluation  bool       `json:"aiAutomaticEvaluation"`
	ManualReview           bool       `json:"manualReview"`
	Status                 Status     `json:"postingStatus"`
	PublicLinkURL          string     `json:"publicLinkUrl,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`

	ResumeItems          []ResumeItem          `json:"resumeItems,omitempty"`
	CoverLetterQuestions []CoverLetterQuestion `json:"coverLetterQuestions,omitempty"`
}

// ResumeItem is one structured resume field the posting collects and grades.
type ResumeItem struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Type       ItemType        `json:"type"`
	IsRequired bool            `json:"isRequired"`
	MaxScore   *int            `json:"maxScore,omitempty"`
	Criteria   []ItemCriterion `json:"criteria,omitempty"`
}

// ItemCriterion maps a grade to a score for a resume item.
type ItemCriterion struct {
	ID            int64  `json:"id"`
	Grade         string `json:"grade"`
	Description   string `json:"description,omitempty"`
	ScorePerGrade int    `json:"scorePerGrade"`
}

// CoverLetterQuestion is one essay question the posting collects and grades.
type CoverLetterQuestion struct {
	ID            int64               `json:"id"`
	Content       string              `json:"content"`
	IsRequired    bool                `json:"isRequired"`
	MaxCharacters int                 `json:"maxCharacters"`
	MaxScore      *int                `json:"maxScore,omitempty"`
	Criteria      []QuestionCriterion `json:"criteria,omitempty"`
}

// QuestionCriterion is a named grading axis for a cover letter question.
type QuestionCriterion struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	OverallDescription string            `json:"overallDescription,omitempty"`
	Details            []CriterionDetail `json:"details,omitempty"`
}

// CriterionDetail is one grade row under a question criterion.
type CriterionDetail struct {
	ID            int64  `json:"id"`
	Grade         string `json:"grade"`
	Description   string `json:"description,omitempty"`
	ScorePerGrade int    `json:"scorePerGrade"`
}
