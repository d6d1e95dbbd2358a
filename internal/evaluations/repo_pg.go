package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"recruit-backend/internal/applications"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, result Result) (Result, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	// Row lock serializes concurrent reports for the same application.
	const lockQuery = `SELECT status FROM applications WHERE id = $1 FOR UPDATE`
	var rawStatus string
	if err := tx.QueryRowContext(ctx, lockQuery, result.ApplicationID).Scan(&rawStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrApplicationNotFound
		}
		return Result{}, err
	}
	if applications.Status(rawStatus).Terminal() {
		return Result{}, ErrTerminalStatus
	}

	const statusQuery = `UPDATE applications SET status = $2 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, statusQuery, result.ApplicationID, string(applications.StatusInProgress)); err != nil {
		return Result{}, err
	}

	const upsertQuery = `
INSERT INTO evaluation_results
    (application_id, job_posting_id, total_score, resume_scores, cover_letter_scores, overall_evaluation, created_at, evaluation_completed_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (application_id) DO UPDATE SET
    job_posting_id          = EXCLUDED.job_posting_id,
    total_score             = EXCLUDED.total_score,
    resume_scores           = EXCLUDED.resume_scores,
    cover_letter_scores     = EXCLUDED.cover_letter_scores,
    overall_evaluation      = EXCLUDED.overall_evaluation,
    evaluation_completed_at = EXCLUDED.evaluation_completed_at
RETURNING id, hr_comment, created_at, evaluation_completed_at`
	var comment sql.NullString
	err = tx.QueryRowContext(ctx, upsertQuery,
		result.ApplicationID,
		result.JobPostingID,
		result.TotalScore,
		rawJSON(result.ResumeScores),
		rawJSON(result.CoverLetterScores),
		rawJSON(result.OverallEvaluation),
	).Scan(&result.ID, &comment, &result.CreatedAt, &result.EvaluationCompletedAt)
	if err != nil {
		return Result{}, err
	}
	result.HRComment = comment.String

	if err := tx.Commit(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (r *PGRepo) GetByApplicationID(ctx context.Context, applicationID int64) (Result, error) {
	const query = `
SELECT id, application_id, job_posting_id, total_score,
       resume_scores, cover_letter_scores, overall_evaluation,
       hr_comment, created_at, evaluation_completed_at
FROM evaluation_results
WHERE application_id = $1
LIMIT 1`
	var result Result
	var resume, coverLetter, overall, comment sql.NullString
	err := r.DB.QueryRowContext(ctx, query, applicationID).Scan(
		&result.ID,
		&result.ApplicationID,
		&result.JobPostingID,
		&result.TotalScore,
		&resume,
		&coverLetter,
		&overall,
		&comment,
		&result.CreatedAt,
		&result.EvaluationCompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	result.ResumeScores = nullableJSON(resume)
	result.CoverLetterScores = nullableJSON(coverLetter)
	result.OverallEvaluation = nullableJSON(overall)
	result.HRComment = comment.String
	return result, nil
}

func (r *PGRepo) SetHRComment(ctx context.Context, applicationID int64, comment string) error {
	const query = `UPDATE evaluation_results SET hr_comment = $2 WHERE application_id = $1`
	res, err := r.DB.ExecContext(ctx, query, applicationID, comment)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return applications.ErrEvaluationMissing
	}
	return nil
}

func (r *PGRepo) TotalScoresByPosting(ctx context.Context, postingID int64) (map[int64]int, error) {
	const query = `
SELECT application_id, total_score
FROM evaluation_results
WHERE job_posting_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[int64]int)
	for rows.Next() {
		var applicationID int64
		var total int
		if err := rows.Scan(&applicationID, &total); err != nil {
			return nil, err
		}
		scores[applicationID] = total
	}
	return scores, rows.Err()
}

func rawJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func nullableJSON(value sql.NullString) json.RawMessage {
	if !value.Valid || value.String == "" {
		return nil
	}
	return json.RawMessage(value.String)
}
