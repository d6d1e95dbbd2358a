package applications

import (
	"context"
	"errors"
	"testing"

	"recruit-backend/internal/evaluator"
	"recruit-backend/internal/postings"
)

type fakeNotifier struct {
	submissions []evaluator.SubmissionPayload
}

func (f *fakeNotifier) NotifyCriteria(payload evaluator.CriteriaPayload) bool {
	_ = payload
	return true
}

func (f *fakeNotifier) NotifySubmission(payload evaluator.SubmissionPayload) bool {
	f.submissions = append(f.submissions, payload)
	return true
}

type fakeCommentStore struct {
	comments map[int64]string
	missing  bool
}

func (f *fakeCommentStore) SetHRComment(ctx context.Context, applicationID int64, comment string) error {
	_ = ctx
	if f.missing {
		return ErrEvaluationMissing
	}
	if f.comments == nil {
		f.comments = map[int64]string{}
	}
	f.comments[applicationID] = comment
	return nil
}

type fakeScores struct {
	scores map[int64]int
}

func (f fakeScores) TotalScoresByPosting(ctx context.Context, postingID int64) (map[int64]int, error) {
	_ = ctx
	_ = postingID
	return f.scores, nil
}

func seedPosting(t *testing.T, repo postings.Repo) postings.JobPosting {
	t.Helper()
	maxScore := 50
	posting, err := repo.Create(context.Background(), postings.JobPosting{
		CompanyID:              1,
		Title:                  "Backend Engineer",
		TotalScore:             100,
		ResumeScoreWeight:      50,
		CoverLetterScoreWeight: 50,
		PassingScore:           60,
		Status:                 postings.StatusInProgress,
		ResumeItems: []postings.ResumeItem{
			{Name: "Experience", Type: postings.ItemTypeNumber, MaxScore: &maxScore},
		},
		CoverLetterQuestions: []postings.CoverLetterQuestion{
			{Content: "Why us?", MaxCharacters: 500, MaxScore: &maxScore},
		},
	})
	if err != nil {
		t.Fatalf("seed posting: %v", err)
	}
	return posting
}

func newTestService(t *testing.T) (*Service, *fakeNotifier, *fakeCommentStore, postings.JobPosting) {
	t.Helper()
	postingRepo := postings.NewMemoryRepo()
	posting := seedPosting(t, postingRepo)
	notifier := &fakeNotifier{}
	comments := &fakeCommentStore{}
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Postings:  postingRepo,
		Comments:  comments,
		Scores:    fakeScores{},
		Evaluator: notifier,
	}
	return svc, notifier, comments, posting
}

func submitInput(posting postings.JobPosting) SubmitInput {
	return SubmitInput{
		ApplicantName:  "Jordan Kim",
		ApplicantEmail: "Jordan@Example.com",
		ResumeAnswers: []ResumeAnswer{
			{ResumeItemID: posting.ResumeItems[0].ID, ResumeContent: "5 years"},
		},
		EssayAnswers: []EssayAnswer{
			{CoverLetterQuestionID: posting.CoverLetterQuestions[0].ID, AnswerContent: "Because."},
		},
	}
}

func TestSubmitCreatesApplicationAndDispatches(t *testing.T) {
	svc, notifier, _, posting := newTestService(t)

	created, err := svc.Submit(context.Background(), posting.ID, submitInput(posting))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.Status != StatusBeforeEvaluation {
		t.Fatalf("status = %s, want BEFORE_EVALUATION", created.Status)
	}
	if created.Applicant.Email != "jordan@example.com" {
		t.Fatalf("email not normalized: %q", created.Applicant.Email)
	}

	if len(notifier.submissions) != 1 {
		t.Fatalf("submissions dispatched = %d, want 1", len(notifier.submissions))
	}
	payload := notifier.submissions[0]
	if payload.ApplicationID != created.ID || payload.JobPostingID != posting.ID {
		t.Fatalf("payload ids = %+v", payload)
	}
	if payload.ResumeItemAnswers[0].ResumeItemName != "Experience" {
		t.Fatalf("resume item name not enriched: %+v", payload.ResumeItemAnswers[0])
	}
	if payload.CoverLetterQuestionAnswers[0].QuestionContent != "Why us?" {
		t.Fatalf("question content not enriched: %+v", payload.CoverLetterQuestionAnswers[0])
	}
}

func TestSubmitReusesApplicantByEmail(t *testing.T) {
	svc, _, _, posting := newTestService(t)

	first, err := svc.Submit(context.Background(), posting.ID, submitInput(posting))
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	again := submitInput(posting)
	again.ApplicantName = "Jordan K."
	second, err := svc.Submit(context.Background(), posting.ID, again)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if second.ApplicantID != first.ApplicantID {
		t.Fatalf("applicant ids differ: %d vs %d", first.ApplicantID, second.ApplicantID)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new application per submission")
	}
	if second.Applicant.Name != "Jordan K." {
		t.Fatalf("applicant name not refreshed: %q", second.Applicant.Name)
	}
}

func TestSubmitUnknownPosting(t *testing.T) {
	svc, _, _, posting := newTestService(t)

	_, err := svc.Submit(context.Background(), 999, submitInput(posting))
	if !errors.Is(err, ErrPostingNotFound) {
		t.Fatalf("expected ErrPostingNotFound, got %v", err)
	}
}

func TestSubmitRejectsForeignAnswers(t *testing.T) {
	svc, notifier, _, posting := newTestService(t)

	input := submitInput(posting)
	input.ResumeAnswers[0].ResumeItemID = 999

	_, err := svc.Submit(context.Background(), posting.ID, input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(notifier.submissions) != 0 {
		t.Fatalf("rejected submission must not be dispatched")
	}
}

func TestDecideRequiresTerminalStatus(t *testing.T) {
	svc, _, _, posting := newTestService(t)
	created, err := svc.Submit(context.Background(), posting.ID, submitInput(posting))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for _, raw := range []string{"IN_PROGRESS", "BEFORE_EVALUATION", "MAYBE"} {
		if _, err := svc.Decide(context.Background(), created.ID, raw, ""); !errors.Is(err, ErrInvalidStatusValue) {
			t.Fatalf("status %q: expected ErrInvalidStatusValue, got %v", raw, err)
		}
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusBeforeEvaluation {
		t.Fatalf("status changed by rejected decision: %s", got.Status)
	}
}

func TestDecideStoresCommentAndStatus(t *testing.T) {
	svc, _, comments, posting := newTestService(t)
	created, err := svc.Submit(context.Background(), posting.ID, submitInput(posting))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	updated, err := svc.Decide(context.Background(), created.ID, "accepted", "strong fit")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if updated.Status != StatusAccepted {
		t.Fatalf("status = %s, want ACCEPTED", updated.Status)
	}
	if comments.comments[created.ID] != "strong fit" {
		t.Fatalf("comment not stored: %+v", comments.comments)
	}
}

func TestDecideCommentWithoutResult(t *testing.T) {
	svc, _, comments, posting := newTestService(t)
	comments.missing = true

	created, err := svc.Submit(context.Background(), posting.ID, submitInput(posting))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, err = svc.Decide(context.Background(), created.ID, "REJECTED", "too junior")
	if !errors.Is(err, ErrEvaluationMissing) {
		t.Fatalf("expected ErrEvaluationMissing, got %v", err)
	}

	// The status change is applied before the comment is attempted.
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusRejected {
		t.Fatalf("status = %s, want REJECTED", got.Status)
	}
}

func TestStatisticsCountsEveryStatus(t *testing.T) {
	svc, _, _, posting := newTestService(t)

	for i := 0; i < 3; i++ {
		input := submitInput(posting)
		if _, err := svc.Submit(context.Background(), posting.ID, input); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if _, err := svc.Decide(context.Background(), 2, "ACCEPTED", ""); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByStatus[StatusAccepted] != 1 || stats.ByStatus[StatusBeforeEvaluation] != 2 {
		t.Fatalf("by status = %+v", stats.ByStatus)
	}
	if _, ok := stats.ByStatus[StatusOnHold]; !ok {
		t.Fatalf("zero statuses must still be present: %+v", stats.ByStatus)
	}
}
