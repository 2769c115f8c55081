package recovery

import (
	"strings"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/passhash"
	"github.com/akarpov87/budgetvault/internal/questions"
	"github.com/akarpov87/budgetvault/internal/users"
)

// State names the position of a recovery session in its lifecycle.
type State string

const (
	// StateQuestionsLoaded: the three questions are available and an answer
	// may be submitted. A mismatched answer keeps the session here.
	StateQuestionsLoaded State = "questions_loaded"

	// StateVerified is terminal: one answer matched and the caller may
	// reset the password.
	StateVerified State = "verified"
)

// Session holds the transient state of one recovery attempt. It is never
// persisted and is discarded after success or abandonment.
type Session struct {
	username  string
	questions [3]questions.Question
	answers   [3]users.SecurityAnswer
	state     State
}

func (s *Session) Username() string { return s.username }

func (s *Session) State() State { return s.state }

// Questions returns the three question texts shown to the user.
func (s *Session) Questions() [3]questions.Question { return s.questions }

// Verified reports whether an answer has matched.
func (s *Session) Verified() bool { return s.state == StateVerified }

// VerifyAnswer checks the submitted answer for the selected question.
// The answer is whitespace-trimmed before hashing; case is preserved.
//
// Outcomes:
//   - nil: match, session moves to StateVerified (terminal).
//   - common.ErrWrongAnswer: mismatch, session stays retryable.
//   - common.ErrInvalidQuestionChoice: questionID is not one of the three.
//   - common.ErrMalformedHash: the stored hash is corrupt; fatal for the
//     attempt.
//   - common.ErrRecoveryFinished: the session already verified.
func (s *Session) VerifyAnswer(questionID int, answer string) error {
	if s.state == StateVerified {
		return common.ErrRecoveryFinished
	}

	var stored *users.SecurityAnswer
	for i := range s.answers {
		if s.answers[i].QuestionID == questionID {
			stored = &s.answers[i]
			break
		}
	}
	if stored == nil {
		return common.ErrInvalidQuestionChoice
	}

	ok, err := passhash.Verify(stored.AnswerHash, strings.TrimSpace(answer))
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrWrongAnswer
	}

	s.state = StateVerified
	return nil
}
