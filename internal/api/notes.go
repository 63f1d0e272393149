package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type NoteCountResponse struct {
	Count int `json:"count"`
}

func (a *API) CreateNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())

		req := NoteRequest{}
		if ok := decodeRequest(a, &req, w, r); !ok {
			return
		}

		note, err := a.service.CreateNote(r.Context(), principal.Subject, req.Content)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().
			Str("email", principal.Subject).
			Int64("note_id", note.ID).
			Msg("note created")
		writeJSON(w, http.StatusCreated, note)
	}
}

func (a *API) ListNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())

		notes, err := a.service.Notes(r.Context(), principal.Subject)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJson(notes, w)
	}
}

func (a *API) CountNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())

		count, err := a.service.CountNotes(r.Context(), principal.Subject)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJson(&NoteCountResponse{Count: count}, w)
	}
}

func (a *API) GetNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		note, err := a.service.Note(r.Context(), principal.Subject, id)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJson(note, w)
	}
}

func (a *API) UpdateNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req := NoteRequest{}
		if ok := decodeRequest(a, &req, w, r); !ok {
			return
		}

		note, err := a.service.UpdateNote(r.Context(), principal.Subject, id, req.Content)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().
			Str("email", principal.Subject).
			Int64("note_id", note.ID).
			Msg("note updated")
		returnJson(note, w)
	}
}

func (a *API) DeleteNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r.Context())
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := a.service.DeleteNote(r.Context(), principal.Subject, id); err != nil {
			a.writeError(w, r, err)
			return
		}

		a.logger.Info().
			Str("email", principal.Subject).
			Int64("note_id", id).
			Msg("note deleted")
		w.WriteHeader(http.StatusOK)
	}
}

// pathID parses the {id} route variable. The route pattern already
// constrains it to digits, so a parse failure is a 404, not a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return 0, false
	}
	return id, true
}
