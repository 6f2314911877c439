package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Login prompts for credentials, exchanges them for a token and loads the
// caller's profile into the session store. Both steps must succeed before
// anything is persisted.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.notifyAuthError(err, "Could not sign in.")
		return err
	}

	user, err := a.api.CurrentUser(ctx, token)
	if err != nil {
		a.notifyAuthError(err, "Could not load your profile.")
		return err
	}

	if err := a.session.SetSession(ctx, token, user); err != nil {
		a.log.Warn(ctx, "persisting session", "error", err)
	}

	a.notifier.Success(fmt.Sprintf("Signed in as %s.", user.DisplayName()))
	return nil
}

func (a *App) notifyAuthError(err error, fallback string) {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrUnavailable):
		a.notifier.Error("Server unavailable. Try again later.")
	case errors.As(err, &statusErr) && statusErr.Detail != "":
		a.notifier.Error(statusErr.Detail)
	default:
		a.notifier.Error(fallback)
	}
}

// Register walks the signup form: shared fields first, then the role-specific
// ones. Students fill in program and year of study, professionals a job title.
func (a *App) Register(ctx context.Context) error {
	req := models.RegisterRequest{}

	var err error
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.out); err != nil {
		return err
	}

	role, err := getSimpleText(a.reader, "Are you a student or a professional? [student/professional]", a.out)
	if err != nil {
		return err
	}
	switch role {
	case models.ProfileStudent, "s":
		req.ProfileType = models.ProfileStudent
		if req.Organization, err = getSimpleText(a.reader, "Enter school", a.out); err != nil {
			return err
		}
		if req.Program, err = getSimpleText(a.reader, "Enter program", a.out); err != nil {
			return err
		}
		if req.YearOfStudy, err = getSimpleText(a.reader, "Enter year of study", a.out); err != nil {
			return err
		}
	case models.ProfileProfessional, "p":
		req.ProfileType = models.ProfileProfessional
		if req.Organization, err = getSimpleText(a.reader, "Enter company", a.out); err != nil {
			return err
		}
		if req.JobTitle, err = getSimpleText(a.reader, "Enter job title", a.out); err != nil {
			return err
		}
	default:
		a.notifier.Error("Profile type must be 'student' or 'professional'.")
		return fmt.Errorf("unknown profile type %q", role)
	}

	if err := a.api.Register(ctx, req); err != nil {
		a.notifyAuthError(err, "Could not create the account.")
		return err
	}

	a.notifier.Success("Account created. You can sign in now.")
	return nil
}

// Logout drops the session locally. The backend keeps no server-side session
// state, so there is nothing to call.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clearing session", "error", err)
	}
	a.notifier.Success("Signed out.")
	return nil
}

// WhoAmI re-validates the stored token against the backend and prints the
// resulting profile.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	user := a.session.Validate(ctx)
	if user == nil {
		a.notifier.Error("Session expired. Please sign in again.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", user.DisplayName(), user.Email)
	switch user.ProfileType {
	case models.ProfileStudent:
		year := ""
		if user.YearOfStudy != nil {
			year = ", year " + strconv.Itoa(*user.YearOfStudy)
		}
		fmt.Fprintf(a.out, "Student at %s (%s%s)\n", user.Organization, user.Program, year)
	case models.ProfileProfessional:
		fmt.Fprintf(a.out, "%s at %s\n", user.JobTitle, user.Organization)
	}
	return nil
}
