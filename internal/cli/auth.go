package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/questions"
	"github.com/akarpov87/budgetvault/internal/randx"
	"github.com/akarpov87/budgetvault/internal/users"
)

// getSimpleText, getPassword and sleepFn are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var sleepFn = time.Sleep

// msgInvalidCredentials is shown for both an unknown username and a wrong
// password, so the two cases cannot be told apart at the prompt.
const msgInvalidCredentials = "Invalid username or password."

// SignUp prompts the user for a username, password and three security
// questions and attempts to create a new account.
//
// On success it prints "Account created!" and returns nil. The password byte
// slice is securely wiped before returning. Validation failures are rendered
// as user-facing messages; unexpected errors are logged.
func (a *App) SignUp(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username (letters and digits, at least 3)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer randx.WipeByteArray(password)

	reg := users.Registration{Username: userName, Password: string(password)}

	fmt.Println("Pick three different security questions:")
	bank := questions.All()
	for i, q := range bank {
		fmt.Printf("  %d. %s\n", i+1, q.Text)
	}

	for i := 0; i < 3; i++ {
		choice, err := getSimpleText(a.reader, fmt.Sprintf("Question #%d (1-%d)", i+1, len(bank)), os.Stdout)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(bank) {
			fmt.Println("Not a valid question number.")
			i--
			continue
		}

		answer, err := getSimpleText(a.reader, "Your answer", os.Stdout)
		if err != nil {
			return err
		}
		reg.Choices[i] = users.AnswerChoice{QuestionID: bank[n-1].ID, Answer: answer}
	}

	if _, err := a.users.SignUp(ctx, reg); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidUsername):
			fmt.Println("Usernames must be at least 3 characters, letters and digits only.")
		case errors.Is(err, common.ErrInvalidPassword):
			fmt.Println("Passwords must be at least 8 characters with an upper-case letter, a lower-case letter and a digit.")
		case errors.Is(err, common.ErrDuplicateUsername):
			fmt.Println("That username is already taken.")
		case errors.Is(err, common.ErrInvalidQuestionChoice):
			fmt.Println("Please pick three different questions from the list.")
		case errors.Is(err, common.ErrEmptyAnswer):
			fmt.Println("Security answers must not be empty.")
		default:
			a.log.Error(ctx, "sign-up failed", "error", err)
			fmt.Println("Could not create the account, see the log for details.")
		}
		return err
	}

	fmt.Println("Account created!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// A failed attempt is answered with msgInvalidCredentials after a short
// configurable pause, whether the username was unknown or the password was
// wrong. An unreadable stored hash is reported separately since retrying
// cannot help. On success the session username is set.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer randx.WipeByteArray(password)

	user, err := a.users.Login(ctx, userName, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			sleepFn(a.config.FailedLoginDelay)
			fmt.Println(msgInvalidCredentials)
		case errors.Is(err, common.ErrMalformedHash):
			fmt.Println("The stored credentials for this account are unreadable. Use 'recover' to reset the password.")
		default:
			a.log.Error(ctx, "login failed", "error", err)
			fmt.Println("Could not log in, see the log for details.")
		}
		return err
	}

	a.userName = user.Username
	fmt.Printf("Welcome, %s!\n", user.Username)
	return nil
}

// Logout drops the in-memory session. Nothing is persisted.
func (a *App) Logout(ctx context.Context) error {
	a.userName = ""
	fmt.Println("Logged out.")
	return nil
}

// ChangePassword re-authenticates the current user and replaces their
// password. The session stays logged in afterwards.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer randx.WipeByteArray(current)

	if _, err := a.users.Login(ctx, a.userName, string(current)); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			sleepFn(a.config.FailedLoginDelay)
			fmt.Println("Wrong password.")
		} else {
			a.log.Error(ctx, "password change failed", "error", err)
			fmt.Println("Could not verify the current password.")
		}
		return err
	}

	return a.promptNewPassword(ctx, a.userName)
}

// promptNewPassword asks for a new password twice and stores it.
// It is shared by ChangePassword and the recovery flow.
func (a *App) promptNewPassword(ctx context.Context, userName string) error {
	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer randx.WipeByteArray(newPassword)

	confirm, err := getPassword("Repeat new password", os.Stdout)
	if err != nil {
		return err
	}
	defer randx.WipeByteArray(confirm)

	if string(newPassword) != string(confirm) {
		fmt.Println("Passwords do not match.")
		return errors.New("password confirmation mismatch")
	}

	if err := a.users.ResetPassword(ctx, userName, string(newPassword)); err != nil {
		if errors.Is(err, common.ErrInvalidPassword) {
			fmt.Println("Passwords must be at least 8 characters with an upper-case letter, a lower-case letter and a digit.")
		} else {
			a.log.Error(ctx, "password reset failed", "error", err)
			fmt.Println("Could not change the password, see the log for details.")
		}
		return err
	}

	fmt.Println("Password changed.")
	return nil
}
