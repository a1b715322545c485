package cmd

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/duration"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 16 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Long:  `Serves classification and score rendering over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := store.FromEnv()
		cobra.CheckErr(err)
		serve(serveAddr, s)
	},
}

type server struct {
	scores store.Store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Could not write response: ", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var input model.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return
	}

	res, err := duration.Classify(input.Duration, input.Divisions, input.Dots)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.ClassifyResponse{Type: res})
}

func (s *server) handleCreateScore(w http.ResponseWriter, r *http.Request) {
	rendered, err := renderReader(io.LimitReader(r.Body, maxUploadBytes), score.DefaultOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New().String()
	summary := rendered.Summary()
	if err := s.scores.Put(r.Context(), id, summary); err != nil {
		log.WithField("id", id).Error("Could not store score: ", err)
		writeError(w, http.StatusInternalServerError, "Could not store score")
		return
	}
	log.WithFields(log.Fields{"id": id, "title": summary.Title}).Info("Stored score")
	writeJSON(w, http.StatusCreated, model.CreateScoreResponse{Id: id, Score: summary})
}

func (s *server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	summary, err := s.scores.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.WithField("id", id).Error("Could not load score: ", err)
		writeError(w, http.StatusInternalServerError, "Could not load score")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func NewRouter(scores store.Store) http.Handler {
	s := &server{scores: scores}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/classify", s.handleClassify).Methods("POST")
	router.HandleFunc("/scores", s.handleCreateScore).Methods("POST")
	router.HandleFunc("/scores/{id}", s.handleGetScore).Methods("GET")
	return cors.Default().Handler(router)
}

func serve(addr string, scores store.Store) {
	log.WithField("addr", addr).Info("Listening")
	log.Fatal(http.ListenAndServe(addr, NewRouter(scores)))
}
