package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(securityHeaders)
	r.Use(a.logRequests)
	r.Use(a.authenticate)

	r.HandleFunc("/healthz", a.Health()).Methods(http.MethodGet)

	open := r.PathPrefix("/api").Subrouter()
	open.Handle("/register", a.Register()).Methods(http.MethodPost)
	open.Handle("/login", a.Login()).Methods(http.MethodPost)
	open.Handle("/refresh", a.Refresh()).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(a.requireAuth)
	protected.Handle("/logout", a.Logout()).Methods(http.MethodPost)
	protected.Handle("/notes", a.CreateNote()).Methods(http.MethodPost)
	protected.Handle("/notes", a.ListNotes()).Methods(http.MethodGet)
	protected.Handle("/notes/count", a.CountNotes()).Methods(http.MethodGet)
	protected.Handle("/notes/{id:[0-9]+}", a.GetNote()).Methods(http.MethodGet)
	protected.Handle("/notes/{id:[0-9]+}", a.UpdateNote()).Methods(http.MethodPut)
	protected.Handle("/notes/{id:[0-9]+}", a.DeleteNote()).Methods(http.MethodDelete)
	protected.Handle("/users/{id:[0-9]+}", a.GetUser()).Methods(http.MethodGet)
	protected.Handle("/users/{id:[0-9]+}", a.DeleteUser()).Methods(http.MethodDelete)

	return r
}
