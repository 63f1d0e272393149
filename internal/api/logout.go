package api

import (
	"net/http"
)

func (a *API) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())

		if err := a.service.Logout(r.Context(), principal.Subject); err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().Str("email", principal.Subject).Msg("user logged out")
		w.WriteHeader(http.StatusOK)
	}
}
