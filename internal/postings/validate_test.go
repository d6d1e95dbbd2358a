package postings

import (
	"errors"
	"testing"
)

func scoreOf(v int) *int {
	return &v
}

func validPosting() JobPosting {
	return JobPosting{
		Title:                  "Backend Engineer",
		ResumeScoreWeight:      60,
		CoverLetterScoreWeight: 40,
		PassingScore:           70,
		ResumeItems: []ResumeItem{
			{Name: "Experience", Type: ItemTypeNumber, MaxScore: scoreOf(40)},
			{Name: "Certificates", Type: ItemTypeText, MaxScore: scoreOf(20)},
		},
		CoverLetterQuestions: []CoverLetterQuestion{
			{Content: "Why us?", MaxCharacters: 500, MaxScore: scoreOf(40)},
		},
	}
}

func TestValidateScoringDerivesTotal(t *testing.T) {
	p := validPosting()
	if err := ValidateScoring(&p); err != nil {
		t.Fatalf("ValidateScoring: %v", err)
	}
	if p.TotalScore != 100 {
		t.Fatalf("TotalScore = %d, want 100", p.TotalScore)
	}
}

func TestValidateScoringRejectsMismatchedTotal(t *testing.T) {
	p := validPosting()
	p.TotalScore = 90

	var violation *ConsistencyViolation
	err := ValidateScoring(&p)
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConsistencyViolation, got %v", err)
	}
	if violation.Invariant != InvariantTotalScore {
		t.Fatalf("invariant = %q", violation.Invariant)
	}
	if violation.Expected != 100 || violation.Actual != 90 {
		t.Fatalf("expected/actual = %d/%d", violation.Expected, violation.Actual)
	}
}

func TestValidateScoringRejectsPassingAtTotal(t *testing.T) {
	p := validPosting()
	p.PassingScore = 100

	var violation *ConsistencyViolation
	if err := ValidateScoring(&p); !errors.As(err, &violation) {
		t.Fatalf("expected ConsistencyViolation, got %v", err)
	} else if violation.Invariant != InvariantPassingScore {
		t.Fatalf("invariant = %q", violation.Invariant)
	}
}

func TestValidateScoringChecksResumeItemSum(t *testing.T) {
	p := validPosting()
	p.ResumeItems[1].MaxScore = scoreOf(30)

	var violation *ConsistencyViolation
	if err := ValidateScoring(&p); !errors.As(err, &violation) {
		t.Fatalf("expected ConsistencyViolation, got %v", err)
	} else if violation.Invariant != InvariantResumeItemSum {
		t.Fatalf("invariant = %q", violation.Invariant)
	}
}

func TestValidateScoringChecksQuestionSum(t *testing.T) {
	p := validPosting()
	p.CoverLetterQuestions[0].MaxScore = nil

	var violation *ConsistencyViolation
	err := ValidateScoring(&p)
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConsistencyViolation, got %v", err)
	} else if violation.Invariant != InvariantCoverLetterSum {
		t.Fatalf("invariant = %q", violation.Invariant)
	}
	if violation := err.(*ConsistencyViolation); violation.Actual != 0 {
		t.Fatalf("nil max score should count as zero, got %d", violation.Actual)
	}
}

func TestValidateScoringSkipsSumChecksWithoutChildren(t *testing.T) {
	p := JobPosting{
		Title:                  "Intern",
		ResumeScoreWeight:      50,
		CoverLetterScoreWeight: 50,
		PassingScore:           60,
	}
	if err := ValidateScoring(&p); err != nil {
		t.Fatalf("ValidateScoring: %v", err)
	}
	if p.TotalScore != 100 {
		t.Fatalf("TotalScore = %d, want 100", p.TotalScore)
	}
}
