package applications

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateSubmission(ctx context.Context, applicant Applicant, application Application) (Application, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Application{}, err
	}
	defer tx.Rollback()

	const upsertApplicant = `
INSERT INTO applicants (name, email, created_at)
VALUES ($1, $2, now())
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, upsertApplicant, applicant.Name, applicant.Email).
		Scan(&applicant.ID, &applicant.CreatedAt)
	if err != nil {
		return Application{}, err
	}

	const insertApplication = `
INSERT INTO applications (applicant_id, job_posting_id, status, created_at)
VALUES ($1, $2, $3, now())
RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, insertApplication,
		applicant.ID,
		application.JobPostingID,
		string(application.Status),
	).Scan(&application.ID, &application.CreatedAt)
	if err != nil {
		return Application{}, err
	}
	application.ApplicantID = applicant.ID
	application.Applicant = applicant

	const insertResumeAnswer = `
INSERT INTO resume_item_answers (application_id, resume_item_id, resume_content)
VALUES ($1, $2, $3)
RETURNING id`
	for i := range application.ResumeAnswers {
		answer := &application.ResumeAnswers[i]
		err = tx.QueryRowContext(ctx, insertResumeAnswer,
			application.ID,
			answer.ResumeItemID,
			answer.ResumeContent,
		).Scan(&answer.ID)
		if err != nil {
			return Application{}, err
		}
	}

	const insertEssayAnswer = `
INSERT INTO cover_letter_question_answers (application_id, cover_letter_question_id, answer_content)
VALUES ($1, $2, $3)
RETURNING id`
	for i := range application.EssayAnswers {
		answer := &application.EssayAnswers[i]
		err = tx.QueryRowContext(ctx, insertEssayAnswer,
			application.ID,
			answer.CoverLetterQuestionID,
			answer.AnswerContent,
		).Scan(&answer.ID)
		if err != nil {
			return Application{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Application{}, err
	}
	return application, nil
}

const selectApplication = `
SELECT a.id, a.applicant_id, a.job_posting_id, a.status, a.created_at,
       p.id, p.name, p.email, p.created_at
FROM applications a
JOIN applicants p ON p.id = a.applicant_id`

func (r *PGRepo) GetByID(ctx context.Context, applicationID int64) (Application, error) {
	row := r.DB.QueryRowContext(ctx, selectApplication+`
WHERE a.id = $1
LIMIT 1`, applicationID)

	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	if err := r.loadAnswers(ctx, &application); err != nil {
		return Application{}, err
	}
	return application, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Application, error) {
	return r.queryMany(ctx, selectApplication+`
ORDER BY a.created_at DESC, a.id DESC`)
}

func (r *PGRepo) ListByPosting(ctx context.Context, postingID int64) ([]Application, error) {
	return r.queryMany(ctx, selectApplication+`
WHERE a.job_posting_id = $1
ORDER BY a.created_at DESC, a.id DESC`, postingID)
}

func (r *PGRepo) LatestByEmail(ctx context.Context, email string) (Application, error) {
	row := r.DB.QueryRowContext(ctx, selectApplication+`
WHERE p.email = $1
ORDER BY a.created_at DESC, a.id DESC
LIMIT 1`, email)

	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return application, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID int64, status Status) error {
	const query = `UPDATE applications SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, applicationID, string(status))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	const query = `SELECT status, count(*) FROM applications GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[Status(status)] = count
	}
	return counts, rows.Err()
}

func (r *PGRepo) queryMany(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, application)
	}
	return out, rows.Err()
}

func (r *PGRepo) loadAnswers(ctx context.Context, application *Application) error {
	const resumeQuery = `
SELECT id, resume_item_id, resume_content
FROM resume_item_answers
WHERE application_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, resumeQuery, application.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var answer ResumeAnswer
		var content sql.NullString
		if err := rows.Scan(&answer.ID, &answer.ResumeItemID, &content); err != nil {
			return err
		}
		answer.ResumeContent = content.String
		application.ResumeAnswers = append(application.ResumeAnswers, answer)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const essayQuery = `
SELECT id, cover_letter_question_id, answer_content
FROM cover_letter_question_answers
WHERE application_id = $1
ORDER BY id`
	rows, err = r.DB.QueryContext(ctx, essayQuery, application.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var answer EssayAnswer
		var content sql.NullString
		if err := rows.Scan(&answer.ID, &answer.CoverLetterQuestionID, &content); err != nil {
			return err
		}
		answer.AnswerContent = content.String
		application.EssayAnswers = append(application.EssayAnswers, answer)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var application Application
	var status string
	err := row.Scan(
		&application.ID,
		&application.ApplicantID,
		&application.JobPostingID,
		&status,
		&application.CreatedAt,
		&application.Applicant.ID,
		&application.Applicant.Name,
		&application.Applicant.Email,
		&application.Applicant.CreatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	application.Status = Status(status)
	return application, nil
}
