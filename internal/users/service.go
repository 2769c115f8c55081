// Package users implements account creation, login and password reset for
// the local budgeting database.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/logging"
	"github.com/akarpov87/budgetvault/internal/passhash"
	"github.com/akarpov87/budgetvault/internal/questions"
	"github.com/akarpov87/budgetvault/internal/randx"
)

type Service struct {
	repo Repository
	log  logging.Logger

	// decoyHash is verified against when a username does not exist, so the
	// unknown-user path costs the same as a failed password check and the
	// two are indistinguishable by timing.
	decoyHash string
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{
		repo:      repo,
		log:       log,
		decoyHash: passhash.MustHash(string(randx.MakeRandByteArray(32))),
	}
}

// SignUp validates reg, hashes its secrets and persists the account with a
// single insert. A taken username yields common.ErrDuplicateUsername; the
// existing row is never touched.
func (s *Service) SignUp(ctx context.Context, reg Registration) (*User, error) {
	if !ValidUsername(reg.Username) {
		return nil, common.ErrInvalidUsername
	}
	if !ValidPassword(reg.Password) {
		return nil, common.ErrInvalidPassword
	}

	var ids [3]int
	for i, c := range reg.Choices {
		ids[i] = c.QuestionID
	}
	if !questions.ValidSelection(ids) {
		return nil, common.ErrInvalidQuestionChoice
	}
	for _, c := range reg.Choices {
		if strings.TrimSpace(c.Answer) == "" {
			return nil, common.ErrEmptyAnswer
		}
	}

	passwordHash, err := passhash.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     reg.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	for i, c := range reg.Choices {
		answerHash, err := passhash.Hash(strings.TrimSpace(c.Answer))
		if err != nil {
			return nil, fmt.Errorf("hash security answer: %w", err)
		}
		user.Answers[i] = SecurityAnswer{QuestionID: c.QuestionID, AnswerHash: answerHash}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user created", "username", created.Username)
	return created, nil
}

// Login verifies the password for username. Unknown usernames and wrong
// passwords both surface as common.ErrInvalidCredentials so callers cannot
// tell which field was wrong. A corrupt stored hash surfaces as
// common.ErrMalformedHash and must not be masked as a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// burn the same hashing work as a real verification
			_, _ = passhash.Verify(s.decoyHash, password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := passhash.Verify(user.PasswordHash, password)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unreadable", "username", username, "error", err)
		return nil, common.ErrMalformedHash
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// ResetPassword replaces the stored password hash for username. Callers must
// gate this behind a verified recovery session.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	if !ValidPassword(newPassword) {
		return common.ErrInvalidPassword
	}

	newHash, err := passhash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, username, newHash); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info(ctx, "password reset", "username", username)
	return nil
}
