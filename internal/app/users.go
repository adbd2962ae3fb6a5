package app

import (
	"errors"
	"net/http"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.contextGetLogger(r).Error("User ID in session but not found in DB", "userId", userId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	profileComplete := true
	_, err = app.userRepo.GetProfile(r.Context(), userId)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}
		profileComplete = false
	}

	resp := api.UserResponse{
		Id:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		CreatedAt:       user.CreatedAt,
		ProfileComplete: profileComplete,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
