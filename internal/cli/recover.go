package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/randx"
)

// Recover walks the user through security-question recovery and, once one
// answer matches, lets them set a new password.
//
// An unknown username is answered with the same message and the same pause
// as a failed login, so the prompt leaks nothing about which usernames
// exist. Wrong answers may be retried until the user gives up with an empty
// answer.
func (a *App) Recover(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.recovery.Start(ctx, userName)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			sleepFn(a.config.FailedLoginDelay)
			fmt.Println(msgInvalidCredentials)
		case errors.Is(err, common.ErrIncompleteQuestions):
			fmt.Println("The security questions for this account are damaged. Recovery is not possible.")
		default:
			a.log.Error(ctx, "recovery failed to start", "error", err)
			fmt.Println("Could not start recovery, see the log for details.")
		}
		return err
	}

	qs := session.Questions()
	fmt.Println("Your security questions:")
	for i, q := range qs {
		fmt.Printf("  %d. %s\n", i+1, q.Text)
	}

	for !session.Verified() {
		choice, err := getSimpleText(a.reader, "Which question will you answer? (1-3, empty to cancel)", os.Stdout)
		if err != nil {
			return err
		}
		if choice == "" {
			fmt.Println("Recovery cancelled.")
			return nil
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(qs) {
			fmt.Println("Not a valid question number.")
			continue
		}

		answer, err := getPassword("Your answer", os.Stdout)
		if err != nil {
			return err
		}

		verifyErr := session.VerifyAnswer(qs[n-1].ID, string(answer))
		randx.WipeByteArray(answer)

		switch {
		case verifyErr == nil:
			// verified, fall out of the loop
		case errors.Is(verifyErr, common.ErrWrongAnswer):
			fmt.Println("That answer does not match. Try again.")
		case errors.Is(verifyErr, common.ErrMalformedHash):
			fmt.Println("The stored answer for this question is unreadable. Recovery is not possible.")
			return verifyErr
		default:
			a.log.Error(ctx, "recovery answer check failed", "error", verifyErr)
			fmt.Println("Could not check the answer, see the log for details.")
			return verifyErr
		}
	}

	fmt.Println("Identity verified. Set a new password.")
	return a.promptNewPassword(ctx, session.Username())
}
