package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/models"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account. Input is validated client-side before
// any request is made; a successful registration does not sign in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	create := models.CreateUser{
		Email:     cmd.String("email"),
		Password:  cmd.String("password"),
		Name:      cmd.String("name"),
		BirthDate: cmd.String("birth-date"),
		Gender:    cmd.String("gender"),
	}

	r.logger.Info("registering account", "email", create.Email)

	user, err := r.api.Register(ctx, create)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s (%s)\n", user.Name, user.Email)
	r.writePlain("Run 'duet auth login' to sign in\n")
	return nil
}

// AuthLogin signs in and persists the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	r.logger.Info("signing in", "email", email)

	if err := r.sessions.Login(ctx, email, cmd.String("password")); err != nil {
		return err
	}

	user := r.sessions.CurrentUser()
	r.writePlain("✓ Signed in as %s\n", user.Name)
	return nil
}

// AuthLogout clears the session. The backend call is best-effort; the local
// token is removed regardless.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.sessions.Initialize(); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	r.sessions.Logout(ctx)
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthStatus shows the current session state without a backend round-trip.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.sessions.Initialize(); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if !r.sessions.Authenticated() {
		return r.writePlain("✗ Not signed in\n")
	}

	r.writePlain("✓ Signed in\n")
	if user := r.sessions.CurrentUser(); user != nil {
		r.writePlain("Account: %s (%s)\n", user.Name, user.Email)
	} else {
		r.writePlain("Account: restored session, run 'duet profile show' for details\n")
	}
	return nil
}
