package api

import (
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := LoginRequest{}
		if ok := decodeRequest(a, &req, w, r); !ok {
			return
		}

		pair, err := a.service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// the attempted email is logged, the password never is
			a.logger.Warn().Str("email", req.Email).Msg("failed login attempt")
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().Str("email", req.Email).Msg("successful login")
		returnJson(pair, w)
	}
}
