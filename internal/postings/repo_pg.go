package postings

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts the posting and all nested children in one transaction.
func (r *PGRepo) Create(ctx context.Context, posting JobPosting) (JobPosting, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return JobPosting{}, err
	}
	defer tx.Rollback()

	const insertPosting = `
INSERT INTO job_postings (
	company_id, title, team_department, job_role, employment_type,
	application_start_date, application_end_date, evaluation_end_date,
	description, experience_requirements, education_requirements, required_skills,
	total_score, resume_score_weight, cover_letter_score_weight, passing_score,
	ai_automatic_evaluation, manual_review, posting_status, public_link_url,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now(), now())
RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, insertPosting,
		posting.CompanyID,
		posting.Title,
		nullableString(posting.TeamDepartment),
		nullableString(posting.JobRole),
		nullableString(posting.EmploymentType),
		posting.ApplicationStartDate,
		posting.ApplicationEndDate,
		posting.EvaluationEndDate,
		nullableString(posting.Description),
		nullableString(posting.ExperienceRequirements),
		nullableString(posting.EducationRequirements),
		nullableString(posting.RequiredSkills),
		posting.TotalScore,
		posting.ResumeScoreWeight,
		posting.CoverLetterScoreWeight,
		posting.PassingScore,
		posting.AIAutomaticEvaluation,
		posting.ManualReview,
		string(posting.Status),
		nullableString(posting.PublicLinkURL),
	).Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)
	if err != nil {
		return JobPosting{}, err
	}

	for i := range posting.ResumeItems {
		item := &posting.ResumeItems[i]
		err = tx.QueryRowContext(ctx, `
INSERT INTO resume_items (job_posting_id, name, item_type, is_required, max_score, position)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			posting.ID, item.Name, string(item.Type), item.IsRequired, item.MaxScore, i,
		).Scan(&item.ID)
		if err != nil {
			return JobPosting{}, err
		}
		for j := range item.Criteria {
			criterion := &item.Criteria[j]
			err = tx.QueryRowContext(ctx, `
INSERT INTO resume_item_criteria (resume_item_id, grade, description, score_per_grade)
VALUES ($1, $2, $3, $4)
RETURNING id`,
				item.ID, criterion.Grade, nullableString(criterion.Description), criterion.ScorePerGrade,
			).Scan(&criterion.ID)
			if err != nil {
				return JobPosting{}, err
			}
		}
	}

	for i := range posting.CoverLetterQuestions {
		question := &posting.CoverLetterQuestions[i]
		err = tx.QueryRowContext(ctx, `
INSERT INTO cover_letter_questions (job_posting_id, content, is_required, max_characters, max_score, position)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			posting.ID, question.Content, question.IsRequired, question.MaxCharacters, question.MaxScore, i,
		).Scan(&question.ID)
		if err != nil {
			return JobPosting{}, err
		}
		for j := range question.Criteria {
			criterion := &question.Criteria[j]
			err = tx.QueryRowContext(ctx, `
INSERT INTO cover_letter_question_criteria (cover_letter_question_id, name, overall_description)
VALUES ($1, $2, $3)
RETURNING id`,
				question.ID, criterion.Name, nullableString(criterion.OverallDescription),
			).Scan(&criterion.ID)
			if err != nil {
				return JobPosting{}, err
			}
			for k := range criterion.Details {
				detail := &criterion.Details[k]
				err = tx.QueryRowContext(ctx, `
INSERT INTO cover_letter_question_criterion_details (criterion_id, grade, description, score_per_grade)
VALUES ($1, $2, $3, $4)
RETURNING id`,
					criterion.ID, detail.Grade, nullableString(detail.Description), detail.ScorePerGrade,
				).Scan(&detail.ID)
				if err != nil {
					return JobPosting{}, err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return JobPosting{}, err
	}
	return posting, nil
}

// Update rewrites posting-level fields. Child collections are left untouched.
func (r *PGRepo) Update(ctx context.Context, posting JobPosting) (JobPosting, error) {
	const query = `
UPDATE job_postings SET
	title = $2,
	team_department = $3,
	job_role = $4,
	employment_type = $5,
	application_start_date = $6,
	application_end_date = $7,
	evaluation_end_date = $8,
	description = $9,
	experience_requirements = $10,
	education_requirements = $11,
	required_skills = $12,
	total_score = $13,
	resume_score_weight = $14,
	cover_letter_score_weight = $15,
	passing_score = $16,
	ai_automatic_evaluation = $17,
	manual_review = $18,
	posting_status = $19,
	updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		posting.ID,
		posting.Title,
		nullableString(posting.TeamDepartment),
		nullableString(posting.JobRole),
		nullableString(posting.EmploymentType),
		posting.ApplicationStartDate,
		posting.ApplicationEndDate,
		posting.EvaluationEndDate,
		nullableString(posting.Description),
		nullableString(posting.ExperienceRequirements),
		nullableString(posting.EducationRequirements),
		nullableString(posting.RequiredSkills),
		posting.TotalScore,
		posting.ResumeScoreWeight,
		posting.CoverLetterScoreWeight,
		posting.PassingScore,
		posting.AIAutomaticEvaluation,
		posting.ManualReview,
		string(posting.Status),
	)
	if err != nil {
		return JobPosting{}, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return JobPosting{}, ErrNotFound
	}
	return r.GetByID(ctx, posting.ID)
}

// GetByID returns a posting with all nested children.
func (r *PGRepo) GetByID(ctx context.Context, postingID int64) (JobPosting, error) {
	const query = `
SELECT id, company_id, title, team_department, job_role, employment_type,
       application_start_date, application_end_date, evaluation_end_date,
       description, experience_requirements, education_requirements, required_skills,
       total_score, resume_score_weight, cover_letter_score_weight, passing_score,
       ai_automatic_evaluation, manual_review, posting_status, public_link_url,
       created_at, updated_at
FROM job_postings
WHERE id = $1
LIMIT 1`
	posting, err := scanPosting(r.DB.QueryRowContext(ctx, query, postingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobPosting{}, ErrNotFound
		}
		return JobPosting{}, err
	}
	if err := r.loadChildren(ctx, &posting); err != nil {
		return JobPosting{}, err
	}
	return posting, nil
}

// List returns all postings with their children, newest first.
func (r *PGRepo) List(ctx context.Context) ([]JobPosting, error) {
	const query = `
SELECT id, company_id, title, team_department, job_role, employment_type,
       application_start_date, application_end_date, evaluation_end_date,
       description, experience_requirements, education_requirements, required_skills,
       total_score, resume_score_weight, cover_letter_score_weight, passing_score,
       ai_automatic_evaluation, manual_review, posting_status, public_link_url,
       created_at, updated_at
FROM job_postings
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobPosting
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateStatus persists a status change from the sweeper or an update.
func (r *PGRepo) UpdateStatus(ctx context.Context, postingID int64, status Status, now time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE job_postings SET posting_status = $2, updated_at = $3 WHERE id = $1`,
		postingID, string(status), now,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPublicLinkURL stores the generated public application link.
func (r *PGRepo) SetPublicLinkURL(ctx context.Context, postingID int64, url string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE job_postings SET public_link_url = $2, updated_at = now() WHERE id = $1`,
		postingID, url,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (JobPosting, error) {
	var p JobPosting
	var teamDepartment, jobRole, employmentType sql.NullString
	var description, experience, education, skills sql.NullString
	var publicLinkURL sql.NullString
	var startDate, endDate, evalEndDate sql.NullTime
	var status string
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Title,
		&teamDepartment,
		&jobRole,
		&employmentType,
		&startDate,
		&endDate,
		&evalEndDate,
		&description,
		&experience,
		&education,
		&skills,
		&p.TotalScore,
		&p.ResumeScoreWeight,
		&p.CoverLetterScoreWeight,
		&p.PassingScore,
		&p.AIAutomaticEvaluation,
		&p.ManualReview,
		&status,
		&publicLinkURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return JobPosting{}, err
	}
	p.TeamDepartment = teamDepartment.String
	p.JobRole = jobRole.String
	p.EmploymentType = employmentType.String
	p.Description = description.String
	p.ExperienceRequirements = experience.String
	p.EducationRequirements = education.String
	p.RequiredSkills = skills.String
	p.PublicLinkURL = publicLinkURL.String
	p.Status = Status(status)
	p.ApplicationStartDate = timePtr(startDate)
	p.ApplicationEndDate = timePtr(endDate)
	p.EvaluationEndDate = timePtr(evalEndDate)
	return p, nil
}

func (r *PGRepo) loadChildren(ctx context.Context, posting *JobPosting) error {
	items, err := r.loadResumeItems(ctx, posting.ID)
	if err != nil {
		return err
	}
	posting.ResumeItems = items

	questions, err := r.loadCoverLetterQuestions(ctx, posting.ID)
	if err != nil {
		return err
	}
	posting.CoverLetterQuestions = questions
	return nil
}

func (r *PGRepo) loadResumeItems(ctx context.Context, postingID int64) ([]ResumeItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, name, item_type, is_required, max_score
FROM resume_items
WHERE job_posting_id = $1
ORDER BY position, id`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ResumeItem
	for rows.Next() {
		var item ResumeItem
		var itemType string
		var maxScore sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Name, &itemType, &item.IsRequired, &maxScore); err != nil {
			return nil, err
		}
		item.Type = ItemType(itemType)
		item.MaxScore = intPtr(maxScore)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		criteria, err := r.loadItemCriteria(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Criteria = criteria
	}
	return items, nil
}

func (r *PGRepo) loadItemCriteria(ctx context.Context, itemID int64) ([]ItemCriterion, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, grade, description, score_per_grade
FROM resume_item_criteria
WHERE resume_item_id = $1
ORDER BY id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var criteria []ItemCriterion
	for rows.Next() {
		var criterion ItemCriterion
		var description sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(&criterion.ID, &criterion.Grade, &description, &score); err != nil {
			return nil, err
		}
		criterion.Description = description.String
		criterion.ScorePerGrade = int(score.Int64)
		criteria = append(criteria, criterion)
	}
	return criteria, rows.Err()
}

func (r *PGRepo) loadCoverLetterQuestions(ctx context.Context, postingID int64) ([]CoverLetterQuestion, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, content, is_required, max_characters, max_score
FROM cover_letter_questions
WHERE job_posting_id = $1
ORDER BY position, id`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []CoverLetterQuestion
	for rows.Next() {
		var question CoverLetterQuestion
		var maxCharacters, maxScore sql.NullInt64
		if err := rows.Scan(&question.ID, &question.Content, &question.IsRequired, &maxCharacters, &maxScore); err != nil {
			return nil, err
		}
		question.MaxCharacters = int(maxCharacters.Int64)
		question.MaxScore = intPtr(maxScore)
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		criteria, err := r.loadQuestionCriteria(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Criteria = criteria
	}
	return questions, nil
}

func (r *PGRepo) loadQuestionCriteria(ctx context.Context, questionID int64) ([]QuestionCriterion, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, name, overall_description
FROM cover_letter_question_criteria
WHERE cover_letter_question_id = $1
ORDER BY id`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var criteria []QuestionCriterion
	for rows.Next() {
		var criterion QuestionCriterion
		var overall sql.NullString
		if err := rows.Scan(&criterion.ID, &criterion.Name, &overall); err != nil {
			return nil, err
		}
		criterion.OverallDescription = overall.String
		criteria = append(criteria, criterion)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range criteria {
		details, err := r.loadCriterionDetails(ctx, criteria[i].ID)
		if err != nil {
			return nil, err
		}
		criteria[i].Details = details
	}
	return criteria, nil
}

func (r *PGRepo) loadCriterionDetails(ctx context.Context, criterionID int64) ([]CriterionDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, grade, description, score_per_grade
FROM cover_letter_question_criterion_details
WHERE criterion_id = $1
ORDER BY id`, criterionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []CriterionDetail
	for rows.Next() {
		var detail CriterionDetail
		var description sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(&detail.ID, &detail.Grade, &description, &score); err != nil {
			return nil, err
		}
		detail.Description = description.String
		detail.ScorePerGrade = int(score.Int64)
		details = append(details, detail)
	}
	return details, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
