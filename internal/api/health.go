package api

import "net/http"

func (a *API) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnJson(map[string]string{"status": "ok"}, w)
	}
}
