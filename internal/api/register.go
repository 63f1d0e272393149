package api

import (
	"net/http"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserResponse is the public identity view: no password material.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := RegisterRequest{}
		if ok := decodeRequest(a, &req, w, r); !ok {
			return
		}

		identity, err := a.service.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().Str("email", identity.Email).Msg("new user registered")

		response := UserResponse{
			ID:       identity.ID,
			Username: identity.Username,
			Email:    identity.Email,
		}
		writeJSON(w, http.StatusCreated, &response)
	}
}
