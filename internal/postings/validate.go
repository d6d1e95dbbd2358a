package postings

import "fmt"

// ConsistencyViolation reports a broken scoring invariant on a posting write.
// The whole nested write is aborted when one is returned.
type ConsistencyViolation struct {
	Invariant string
	Expected  int
	Actual    int
}

func (v *ConsistencyViolation) Error() string {
	return fmt.Sprintf("scoring consistency violation: %s (expected %d, got %d)", v.Invariant, v.Expected, v.Actual)
}

const (
	InvariantTotalScore     = "totalScore must equal resumeScoreWeight + coverLetterScoreWeight"
	InvariantPassingScore   = "passingScore must be less than totalScore"
	InvariantResumeItemSum  = "sum of resume item max scores must equal resumeScoreWeight"
	InvariantCoverLetterSum = "sum of cover letter question max scores must equal coverLetterScoreWeight"
)

// ValidateScoring checks the posting's scoring configuration against its
// nested items. TotalScore is derived from the two weights, the only place a
// missing max score is treated as zero. The posting is modified in place on
// success; on error the caller discards the whole nested write.
func ValidateScoring(p *JobPosting) error {
	derived := p.ResumeScoreWeight + p.CoverLetterScoreWeight
	if p.TotalScore != 0 && p.TotalScore != derived {
		return &ConsistencyViolation{
			Invariant: InvariantTotalScore,
			Expected:  derived,
			Actual:    p.TotalScore,
		}
	}
	p.TotalScore = derived

	if p.PassingScore >= p.TotalScore {
		return &ConsistencyViolation{
			Invariant: InvariantPassingScore,
			Expected:  p.TotalScore - 1,
			Actual:    p.PassingScore,
		}
	}

	if len(p.ResumeItems) > 0 {
		sum := 0
		for _, item := range p.ResumeItems {
			if item.MaxScore != nil {
				sum += *item.MaxScore
			}
		}
		if sum != p.ResumeScoreWeight {
			return &ConsistencyViolation{
				Invariant: InvariantResumeItemSum,
				Expected:  p.ResumeScoreWeight,
				Actual:    sum,
			}
		}
	}

	if len(p.CoverLetterQuestions) > 0 {
		sum := 0
		for _, q := range p.CoverLetterQuestions {
			if q.MaxScore != nil {
				sum += *q.MaxScore
			}
		}
		if sum != p.CoverLetterScoreWeight {
			return &ConsistencyViolation{
				Invariant: InvariantCoverLetterSum,
				Expected:  p.CoverLetterScoreWeight,
				Actual:    sum,
			}
		}
	}

	return nil
}
