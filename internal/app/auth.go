package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

func (app *Application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user := domain.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	profile := domain.Profile{Phone: input.Phone}

	profileComplete, err := app.userRepo.CreateWithProfile(r.Context(), &user, &profile)
	if err != nil && !errors.Is(err, domain.ErrProfileNotCreated) {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("registration attempt for existing email")
			// do not return the info of existence of email to avoid user enumeration attacks
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		default:
			logger.Error("failed to create user", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !profileComplete {
		// The account exists and is usable; only the profile row is missing.
		// Keep the failure loud so it can be repaired instead of vanishing.
		logger.Warn("profile creation failed for new user", "user_id", user.ID, "error", err)
	}

	go func(ctx context.Context) {
		// new logger for this goroutine, inheriting context from the request
		// important for tracing across async boundaries
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending welcome mail", "panic", err)
			}
		}()

		data := map[string]any{
			"firstName": user.FirstName,
			"userID":    user.ID,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send welcome email", "error", err)
		} else {
			gLogger.Info("welcome email sent successfully")
		}
	}(r.Context())

	resp := api.UserResponse{
		Id:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		CreatedAt:       user.CreatedAt,
		ProfileComplete: profileComplete,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	if userId != 0 {
		resp := api.AlreadyLoggedInResponse{
			Message: "You are already logged in",
		}

		err := app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	user, err := app.userRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent user")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get user by email during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !match {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	// To help prevent session fixation attacks we should renew the session token after any privilege level change.
	// https://github.com/OWASP/CheatSheetSeries/blob/master/cheatsheets/Session_Management_Cheat_Sheet.md#renew-the-session-id-after-any-privilege-level-change
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), user.ID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	if userId == 0 {
		app.notFoundResponse(w, r)
		return
	}

	app.sessionManager.Destroy(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
