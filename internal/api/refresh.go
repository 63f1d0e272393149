package api

import (
	"net/http"
)

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (a *API) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := RefreshRequest{}
		if ok := decodeRequest(a, &req, w, r); !ok {
			return
		}

		pair, err := a.service.Rotate(r.Context(), req.RefreshToken)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJson(pair, w)
	}
}
