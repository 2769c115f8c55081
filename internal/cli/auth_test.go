package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/config"
	"github.com/akarpov87/budgetvault/internal/logging"
	"github.com/akarpov87/budgetvault/internal/questions"
	"github.com/akarpov87/budgetvault/internal/users"
)

// stubPrompts replaces the interactive input seams with scripted responses.
// Each call to getSimpleText/getPassword pops the next value.
func stubPrompts(t *testing.T, texts []string, passwords []string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.NotEmpty(t, texts, "ran out of scripted text inputs")
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "ran out of scripted passwords")
		next := passwords[0]
		passwords = passwords[1:]
		return []byte(next), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	orig := sleepFn
	var slept []time.Duration
	sleepFn = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleepFn = orig })
	return &slept
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{FailedLoginDelay: 2 * time.Second}
}

type fakeUsers struct {
	signUpReg users.Registration
	signUpErr error

	loginUser string
	loginPass string
	loginOut  *users.User
	loginErr  error

	resetUser string
	resetPass string
	resetErr  error
}

func (f *fakeUsers) SignUp(_ context.Context, reg users.Registration) (*users.User, error) {
	f.signUpReg = reg
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &users.User{Username: reg.Username}, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (*users.User, error) {
	f.loginUser, f.loginPass = username, password
	return f.loginOut, f.loginErr
}

func (f *fakeUsers) ResetPassword(_ context.Context, username, newPassword string) error {
	f.resetUser, f.resetPass = username, newPassword
	return f.resetErr
}

func TestSignUp_CollectsRegistration(t *testing.T) {
	bank := questions.All()

	restore := stubPrompts(t,
		[]string{"alice", "1", "blue", "2", "Rex", "3", "Oslo"},
		[]string{"Password1"},
	)
	defer restore()

	f := &fakeUsers{}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	require.NoError(t, a.SignUp(context.Background()))

	reg := f.signUpReg
	assert.Equal(t, "alice", reg.Username)
	assert.Equal(t, "Password1", reg.Password)
	assert.Equal(t, bank[0].ID, reg.Choices[0].QuestionID)
	assert.Equal(t, "blue", reg.Choices[0].Answer)
	assert.Equal(t, bank[1].ID, reg.Choices[1].QuestionID)
	assert.Equal(t, "Rex", reg.Choices[1].Answer)
	assert.Equal(t, bank[2].ID, reg.Choices[2].QuestionID)
	assert.Equal(t, "Oslo", reg.Choices[2].Answer)
}

func TestSignUp_RetriesBadQuestionNumber(t *testing.T) {
	bank := questions.All()

	restore := stubPrompts(t,
		[]string{"alice", "99", "1", "blue", "2", "Rex", "3", "Oslo"},
		[]string{"Password1"},
	)
	defer restore()

	f := &fakeUsers{}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	require.NoError(t, a.SignUp(context.Background()))
	assert.Equal(t, bank[0].ID, f.signUpReg.Choices[0].QuestionID)
}

func TestSignUp_ServiceErrorPropagates(t *testing.T) {
	restore := stubPrompts(t,
		[]string{"alice", "1", "blue", "2", "Rex", "3", "Oslo"},
		[]string{"Password1"},
	)
	defer restore()

	f := &fakeUsers{signUpErr: common.ErrDuplicateUsername}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	err := a.SignUp(context.Background())
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestLogin_Success(t *testing.T) {
	restore := stubPrompts(t, []string{"alice"}, []string{"Password1"})
	defer restore()

	f := &fakeUsers{loginOut: &users.User{Username: "alice"}}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "alice", a.userName)
	assert.Equal(t, "alice", f.loginUser)
	assert.Equal(t, "Password1", f.loginPass)
	assert.True(t, a.isLoggedIn())
}

func TestLogin_InvalidCredentialsPausesAndStaysLoggedOut(t *testing.T) {
	restore := stubPrompts(t, []string{"alice"}, []string{"wrong"})
	defer restore()
	slept := stubSleep(t)

	f := &fakeUsers{loginErr: common.ErrInvalidCredentials}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, a.userName)
	require.Len(t, *slept, 1)
	assert.Equal(t, 2*time.Second, (*slept)[0])
}

func TestLogin_MalformedHashDoesNotPause(t *testing.T) {
	restore := stubPrompts(t, []string{"alice"}, []string{"Password1"})
	defer restore()
	slept := stubSleep(t)

	f := &fakeUsers{loginErr: common.ErrMalformedHash}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrMalformedHash)
	assert.Empty(t, *slept)
}

func TestLogout_ClearsSession(t *testing.T) {
	a := &App{config: testConfig(), log: testLogger(), userName: "alice"}
	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestChangePassword_HappyPath(t *testing.T) {
	restore := stubPrompts(t, nil, []string{"OldPass1", "NewPass1", "NewPass1"})
	defer restore()

	f := &fakeUsers{loginOut: &users.User{Username: "alice"}}
	a := &App{config: testConfig(), log: testLogger(), users: f, userName: "alice"}

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Equal(t, "alice", f.resetUser)
	assert.Equal(t, "NewPass1", f.resetPass)
}

func TestChangePassword_ConfirmationMismatch(t *testing.T) {
	restore := stubPrompts(t, nil, []string{"OldPass1", "NewPass1", "Different1"})
	defer restore()

	f := &fakeUsers{loginOut: &users.User{Username: "alice"}}
	a := &App{config: testConfig(), log: testLogger(), users: f, userName: "alice"}

	require.Error(t, a.ChangePassword(context.Background()))
	assert.Empty(t, f.resetUser)
}

func TestChangePassword_RequiresLogin(t *testing.T) {
	f := &fakeUsers{}
	a := &App{config: testConfig(), log: testLogger(), users: f}

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Empty(t, f.loginUser)
}
