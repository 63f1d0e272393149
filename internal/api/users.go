package api

import (
	"net/http"

	"git.sr.ht/~mpalumbo/notevault/internal/service"
)

func (a *API) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		identity, err := a.service.User(r.Context(), id)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		response := UserResponse{
			ID:       identity.ID,
			Username: identity.Username,
			Email:    identity.Email,
		}
		returnJson(&response, w)
	}
}

func (a *API) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())
		if principal.Role != service.RoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "access denied"})
			return
		}

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := a.service.DeleteUser(r.Context(), id); err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().
			Str("admin", principal.Subject).
			Int64("user_id", id).
			Msg("user deleted")
		w.WriteHeader(http.StatusOK)
	}
}
