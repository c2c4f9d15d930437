package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/buffsmarket/marketcli/internal/client/services"
	"github.com/buffsmarket/marketcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
//
// On success the session store already holds the new identity (the service
// persists it) and any cached listings are dropped so the next fetch runs
// as the new user. The password byte slice is securely wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.listings.Reset()

	if exp, ok := a.sessions.Expiry(); ok {
		printlnFn(fmt.Sprintf("Welcome, %s! Session valid until %s.", user.DisplayName(), exp.Format(time.RFC822)))
	} else {
		printlnFn(fmt.Sprintf("Welcome, %s!", user.DisplayName()))
	}
	return nil
}

// Register walks the user through the registration form and attempts to
// create a new account. Validation failures (password mismatch, short
// password, wrong email domain) are reported before the server is contacted.
// Both password slices are securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	user, err := a.auth.Register(ctx, services.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		FirstName:       firstName,
		LastName:        lastName,
	})
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	a.listings.Reset()
	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", user.DisplayName()))
	return nil
}

// Logout clears the persisted session and any cached listings.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(); err != nil {
		return err
	}
	a.listings.Reset()
	printlnFn("Logged out.")
	return nil
}

// WhoAmI fetches the current profile from the server and prints it.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Not logged in.")
		} else {
			printlnFn("Error:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.Username, user.Email))
	if user.FirstName != "" || user.LastName != "" {
		printlnFn(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	}
	if exp, ok := a.sessions.Expiry(); ok {
		printlnFn("Session valid until", exp.Format(time.RFC822))
	}
	return nil
}

// Users lists all registered users.
func (a *App) Users(ctx context.Context) error {
	users, err := a.auth.Users(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, u := range users {
		printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	}
	return nil
}
