package users

import "time"

// SecurityAnswer is one stored (question, hashed answer) pair.
type SecurityAnswer struct {
	QuestionID int
	AnswerHash string
}

// User is the persisted account row. Only hash outputs are ever stored;
// plaintext passwords and answers never reach the repository.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Answers      [3]SecurityAnswer
	CreatedAt    time.Time
}

// AnswerChoice is one (question, plaintext answer) pair picked at sign-up.
type AnswerChoice struct {
	QuestionID int
	Answer     string
}

// Registration carries all fields collected during sign-up. It is built
// once, after the interactive flow completes, and validated as a whole.
type Registration struct {
	Username string
	Password string
	Choices  [3]AnswerChoice
}
