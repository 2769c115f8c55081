// Package recovery implements security-question account recovery: look up a
// user, present their three questions, verify one submitted answer, and on
// success permit a password reset.
//
// All recovery state lives in a transient Session; nothing is persisted.
package recovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/logging"
	"github.com/akarpov87/budgetvault/internal/questions"
	"github.com/akarpov87/budgetvault/internal/users"
)

// Flow starts recovery sessions against the row store.
type Flow struct {
	repo users.Repository
	log  logging.Logger
}

func NewFlow(repo users.Repository, log logging.Logger) *Flow {
	return &Flow{repo: repo, log: log}
}

// Start fetches the three stored (question, answer hash) pairs for username
// in one query and returns a Session holding them.
//
// An unknown username yields common.ErrUserNotFound; the UI must render it
// with the same message as a failed login. A user with fewer than three
// usable pairs is a data-integrity failure (common.ErrIncompleteQuestions),
// not a question lookup miss.
func (f *Flow) Start(ctx context.Context, username string) (*Session, error) {
	answers, err := f.repo.FetchSecurityAnswers(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch security answers: %w", err)
	}

	qs := [3]questions.Question{}
	for i, a := range answers {
		q, ok := questions.ByID(a.QuestionID)
		if !ok || a.AnswerHash == "" {
			f.log.Error(ctx, "incomplete security questions on record",
				"username", username, "slot", i, "question_id", a.QuestionID)
			return nil, common.ErrIncompleteQuestions
		}
		qs[i] = q
	}

	return &Session{
		username:  username,
		questions: qs,
		answers:   answers,
		state:     StateQuestionsLoaded,
	}, nil
}
