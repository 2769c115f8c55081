package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, q1_id, a1_hash, q2_id, a2_hash, q3_id, a3_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash,
		user.Answers[0].QuestionID, user.Answers[0].AnswerHash,
		user.Answers[1].QuestionID, user.Answers[1].AnswerHash,
		user.Answers[2].QuestionID, user.Answers[2].AnswerHash,
	)
	if err != nil {
		// message-based check keeps this working with both the SQLCipher
		// driver and the pure-Go driver used in tests
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to insert user %q: %w", user.Username, err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, q1_id, a1_hash, q2_id, a2_hash, q3_id, a3_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Answers[0].QuestionID, &user.Answers[0].AnswerHash,
		&user.Answers[1].QuestionID, &user.Answers[1].AnswerHash,
		&user.Answers[2].QuestionID, &user.Answers[2].AnswerHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return user, nil
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, username, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`, newHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password for %q: %w", username, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password for %q: %w", username, err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) FetchSecurityAnswers(ctx context.Context, username string) ([3]SecurityAnswer, error) {
	query := `
		SELECT q1_id, a1_hash, q2_id, a2_hash, q3_id, a3_hash
		FROM users
		WHERE username = ?
	`

	var answers [3]SecurityAnswer
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&answers[0].QuestionID, &answers[0].AnswerHash,
		&answers[1].QuestionID, &answers[1].AnswerHash,
		&answers[2].QuestionID, &answers[2].AnswerHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return answers, common.ErrNotFound
		}
		return answers, fmt.Errorf("failed to fetch security answers for %q: %w", username, err)
	}

	return answers, nil
}
