// Package server is the JSON shim over the engine. Handlers translate HTTP
// into engine calls and validation errors into 4xx responses; nothing here
// carries game logic.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"axiom/internal/game"
	"axiom/internal/nexus"
	"axiom/internal/notify"
	"axiom/internal/quest"
)

// App holds what the handlers depend on.
type App struct {
	Engine *game.Engine
	Log    *log.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto status codes: validation errors
// are the user's problem, everything else is ours.
func writeError(w http.ResponseWriter, err error) {
	var verr *nexus.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Reason})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

// RegisterRoutes wires the API onto the mux.
func RegisterRoutes(mux *http.ServeMux, app *App) {
	e := app.Engine

	mux.HandleFunc("POST /api/session/start", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.StartSession(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("GET /api/quests", func(w http.ResponseWriter, r *http.Request) {
		quests, err := e.Store.ListQuests(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quests)
	})

	mux.HandleFunc("POST /api/quests", func(w http.ResponseWriter, r *http.Request) {
		var in quest.Quest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid body: " + err.Error()})
			return
		}
		if in.Title == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "title is required"})
			return
		}
		created, err := e.CreateQuest(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("POST /api/quests/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.CompleteQuest(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("POST /api/quests/{id}/uncomplete", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.UncompleteQuest(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("DELETE /api/quests/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := e.Store.DeleteQuest(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/world", func(w http.ResponseWriter, r *http.Request) {
		state, err := e.Store.LoadWorld(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	})

	mux.HandleFunc("POST /api/world/districts/{districtID}/structures/{structureID}/build", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.BuildStructure(r.Context(), r.PathValue("districtID"), r.PathValue("structureID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("POST /api/world/districts/{districtID}/structures/{structureID}/repair", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.RepairStructure(r.Context(), r.PathValue("districtID"), r.PathValue("structureID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("POST /api/world/expeditions/{id}/launch", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.LaunchExpedition(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("GET /api/chronicle", func(w http.ResponseWriter, r *http.Request) {
		days, err := e.Store.ListDays(r.Context(), 30)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, days)
	})

	mux.HandleFunc("GET /api/notifications/preview", func(w http.ResponseWriter, r *http.Request) {
		pending, err := e.PendingDailies(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		state, err := e.Store.LoadWorld(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		// The log spans many days; only today's news is worth an alert.
		var today []nexus.WorldEvent
		for _, ev := range state.Events {
			if ev.Day == state.Day {
				today = append(today, ev)
			}
		}
		writeJSON(w, http.StatusOK, notify.Evaluate(pending, today))
	})
}
