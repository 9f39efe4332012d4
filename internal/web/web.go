package web

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func Respond(w http.ResponseWriter, code int, data interface{}) {
	if code == http.StatusNoContent || data == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		return
	}

	b, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "unable to marshal response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err := w.Write(b); err != nil {
		log.WithError(errors.Wrap(err, "write response body")).Error("respond")
	}
}

func RespondError(w http.ResponseWriter, code int, message string) {
	log.WithFields(log.Fields{
		"error": message,
	}).Error("error while serving request")

	b, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err := w.Write(b); err != nil {
		log.WithError(errors.Wrap(err, "write error response body")).Error("respond error")
	}
}
