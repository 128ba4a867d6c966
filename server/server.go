package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/buzzer/constants"
	"github.com/jsphweid/buzzer/device/wav"
	"github.com/jsphweid/buzzer/library"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/melody"
	"github.com/jsphweid/buzzer/model"
	"github.com/jsphweid/buzzer/oneshot"
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/score"
	"github.com/rs/cors"
)

type Server struct {
	Store      library.Store
	Played     oneshot.Flag
	Buzzer     player.Buzzer
	Clock      player.Clock
	SampleRate int

	// one tone channel, so one melody at a time
	playing sync.Mutex
	jobs    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/melodies", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/melodies/{name}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/melodies/{name}", s.handlePut).Methods(http.MethodPut)
	router.HandleFunc("/melodies/{name}", s.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/melodies/{name}/preview.wav", s.handlePreview).Methods(http.MethodGet)
	router.HandleFunc("/melodies/{name}/play", s.handlePlay).Methods(http.MethodPost)
	router.HandleFunc("/melodies/{name}/play", s.handleResetPlay).Methods(http.MethodDelete)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}).Handler(router)
}

// Wait stops accepting plays and blocks until every queued playback has
// finished. Call it once the HTTP server has shut down, before releasing
// the buzzer.
func (s *Server) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.jobs.Wait()
}

// startJob counts a playback unless Wait has been called.
func (s *Server) startJob() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.jobs.Add(1)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("could not write response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	logger.Error("library error", logger.ErrorField(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (string, *melody.Melody, bool) {
	name := mux.Vars(r)["name"]
	table, err := s.Store.Get(r.Context(), name)
	if err != nil {
		s.writeStoreError(w, err)
		return name, nil, false
	}
	return name, table.Melody(), true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, model.ListResponse{Melodies: names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name, m, ok := s.load(w, r)
	if !ok {
		return
	}
	var low int
	for _, n := range m.Notes() {
		if n.Frequency() < constants.MinFrequency {
			low++
		}
	}
	writeJSON(w, http.StatusOK, model.MelodyResponse{
		Name:     name,
		Length:   m.Len(),
		Duration: m.Duration(),
		Notes:    score.FromMelody(name, m).Notes,
		Timeline: player.Timeline(m),
		LowNotes: low,
	})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := library.ValidateName(name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body model.PutRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}
	if body.Notes == nil {
		body.Notes = []score.Entry{}
	}
	if err := s.Store.Put(r.Context(), &score.Table{Name: name, Notes: body.Notes}); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name, m, ok := s.load(w, r)
	if !ok {
		return
	}
	rate := s.SampleRate
	if rate == 0 {
		rate = constants.SampleRate
	}
	renderer := wav.New(rate)
	player.Play(renderer, renderer, m)
	data, err := renderer.Bytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`.wav"`)
	w.Write(data)
}

// handlePlay plays a melody on the server's buzzer once. Later requests get
// 409 until the flag is reset, unless force=true. wait=true blocks until
// playback is over.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if s.Buzzer == nil {
		writeError(w, http.StatusServiceUnavailable, "no buzzer attached")
		return
	}
	name, m, ok := s.load(w, r)
	if !ok {
		return
	}
	if !s.startJob() {
		writeError(w, http.StatusServiceUnavailable, "shutting down")
		return
	}
	query := r.URL.Query()
	if query.Get("force") != "true" {
		first, err := s.Played.Acquire(r.Context(), name)
		if err != nil {
			s.jobs.Done()
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !first {
			s.jobs.Done()
			writeError(w, http.StatusConflict, name+" has already been played")
			return
		}
	}

	job := uuid.New().String()
	run := func() {
		defer s.jobs.Done()
		s.playing.Lock()
		defer s.playing.Unlock()
		logger.Info("playing", logger.String("job", job), logger.String("name", name), logger.Int("notes", m.Len()))
		player.Play(s.Buzzer, s.Clock, m)
		logger.Info("played", logger.String("job", job))
	}
	wait := query.Get("wait") == "true"
	if wait {
		run()
	} else {
		go run()
	}
	status := http.StatusAccepted
	if wait {
		status = http.StatusOK
	}
	writeJSON(w, status, model.PlayResponse{Job: job, Name: name, Queued: !wait})
}

func (s *Server) handleResetPlay(w http.ResponseWriter, r *http.Request) {
	if err := s.Played.Reset(r.Context(), mux.Vars(r)["name"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
