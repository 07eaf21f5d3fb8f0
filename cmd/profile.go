package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the signed-in account's record.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	user, err := r.engine.Me(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(user.Name)
	r.writePlain("Email: %s\n", user.Email)
	if user.Bio != "" {
		r.writePlain("Bio: %s\n", user.Bio)
	}
	if user.Gender != "" {
		r.writePlain("Gender: %s\n", user.Gender)
	}
	if user.LookingFor != "" {
		r.writePlain("Looking for: %s\n", user.LookingFor)
	}
	if user.LastfmUsername != "" {
		r.writePlain("Last.fm: %s (connected %s)\n", user.LastfmUsername, user.LastfmConnectedAt)
	} else {
		r.writePlain("Last.fm: not connected, run 'duet lastfm connect <username>'\n")
	}
	return nil
}

// ProfileUpdate applies a partial update built from the set flags only.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	update := models.UpdateUser{
		Name:       cmd.String("name"),
		Bio:        cmd.String("bio"),
		BirthDate:  cmd.String("birth-date"),
		Gender:     cmd.String("gender"),
		LookingFor: cmd.String("looking-for"),
	}
	if cmd.IsSet("lat") {
		lat := cmd.Float("lat")
		update.Latitude = &lat
	}
	if cmd.IsSet("lon") {
		lon := cmd.Float("lon")
		update.Longitude = &lon
	}

	if update == (models.UpdateUser{}) {
		return fmt.Errorf("%w: set at least one field to update", shared.ErrMissingArgument)
	}

	r.logger.Info("updating profile")

	user, err := r.engine.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	r.writePlain("✓ Profile updated for %s\n", user.Name)
	return nil
}

// ProfileView prints another user's record by id.
func (r *Runner) ProfileView(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	userID := cmd.StringArg("id")
	if userID == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	user, err := r.api.User(ctx, userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(user.Name)
	if user.Bio != "" {
		r.writePlain("Bio: %s\n", user.Bio)
	}
	if user.LastfmUsername != "" {
		r.writePlain("Last.fm: %s\n", user.LastfmUsername)
	}
	return nil
}
