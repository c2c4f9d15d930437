// Package services contains the application services of the marketplace
// client. This file defines the authentication service: login, registration
// with client-side validation, and the queries describing users.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/buffsmarket/marketcli/internal/client/graphql"
	"github.com/buffsmarket/marketcli/internal/client/models"
	"github.com/buffsmarket/marketcli/internal/client/session"
	"github.com/buffsmarket/marketcli/internal/common"
)

const minPasswordLength = 8

const loginMutation = `
  mutation($email: String!, $password: String!) {
    login(email: $email, password: $password) {
      success
      message
      token
      user { id username email firstName lastName }
    }
  }`

const registerMutation = `
  mutation($username: String!, $email: String!, $password: String!, $firstName: String, $lastName: String) {
    register(username: $username, email: $email, password: $password, firstName: $firstName, lastName: $lastName) {
      success
      message
      token
      user { id username email firstName lastName }
    }
  }`

const meQuery = `
  query {
    me { id username email firstName lastName }
  }`

const usersQuery = `
  query {
    users { id username email }
  }`

// ValidationError reports a form check that failed before any network call
// was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RegisterRequest carries the registration form. Password slices are wiped
// by the caller after use; the service only reads them.
type RegisterRequest struct {
	Username        string
	Email           string
	Password        []byte
	ConfirmPassword []byte
	FirstName       string
	LastName        string
}

// AuthService drives the authentication flows and user queries.
//
// Contract:
//   - Login / Register: on success the session store holds the new identity;
//     on success=false no state changes and a DomainError carries the
//     server's message.
//   - Register validates the form client-side first; a *ValidationError
//     means the server was never contacted.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.UserProfile, error)
	Register(ctx context.Context, req RegisterRequest) (*models.UserProfile, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	Users(ctx context.Context) ([]models.UserProfile, error)
}

type authService struct {
	gql      graphql.Executor
	sessions *session.Store

	// emailDomain is the institutional suffix registration must use,
	// e.g. "colorado.edu". Empty disables the check: the rule varied
	// across deployments, so it is policy, not a constant.
	emailDomain string
}

func NewAuthService(gql graphql.Executor, sessions *session.Store, emailDomain string) AuthService {
	return &authService{gql: gql, sessions: sessions, emailDomain: emailDomain}
}

type authPayload struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    *models.UserProfile `json:"user"`
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.UserProfile, error) {
	var out struct {
		Login authPayload `json:"login"`
	}
	vars := map[string]any{"email": email, "password": string(password)}
	if err := a.gql.Execute(ctx, loginMutation, vars, &out); err != nil {
		return nil, err
	}

	if !out.Login.Success {
		return nil, &common.DomainError{Message: out.Login.Message}
	}

	if err := a.sessions.OnAuthSuccess(out.Login.Token, out.Login.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return out.Login.User, nil
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) (*models.UserProfile, error) {
	if err := a.validateRegistration(req); err != nil {
		return nil, err
	}

	var out struct {
		Register authPayload `json:"register"`
	}
	vars := map[string]any{
		"username":  req.Username,
		"email":     req.Email,
		"password":  string(req.Password),
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	}
	if err := a.gql.Execute(ctx, registerMutation, vars, &out); err != nil {
		return nil, err
	}

	if !out.Register.Success {
		return nil, &common.DomainError{Message: out.Register.Message}
	}

	if err := a.sessions.OnAuthSuccess(out.Register.Token, out.Register.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return out.Register.User, nil
}

// validateRegistration runs the form checks in the order the user sees them.
func (a *authService) validateRegistration(req RegisterRequest) error {
	if !bytes.Equal(req.Password, req.ConfirmPassword) {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if len(req.Password) < minPasswordLength {
		return &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters long", minPasswordLength)}
	}
	if a.emailDomain != "" {
		suffix := "@" + strings.ToLower(a.emailDomain)
		if !strings.HasSuffix(strings.ToLower(req.Email), suffix) {
			return &ValidationError{Message: fmt.Sprintf("Email must end with %s", suffix)}
		}
	}
	return nil
}

func (a *authService) Me(ctx context.Context) (*models.UserProfile, error) {
	var out struct {
		Me *models.UserProfile `json:"me"`
	}
	if err := a.gql.Execute(ctx, meQuery, nil, &out); err != nil {
		return nil, err
	}
	if out.Me == nil {
		return nil, common.ErrUnauthorized
	}
	return out.Me, nil
}

func (a *authService) Users(ctx context.Context) ([]models.UserProfile, error) {
	var out struct {
		Users []models.UserProfile `json:"users"`
	}
	if err := a.gql.Execute(ctx, usersQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}
