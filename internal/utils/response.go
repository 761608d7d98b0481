package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is returned with 5xx statuses.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is returned with 4xx statuses.
type MessageBody struct {
	Msg string `json:"msg"`
}

type ExistsBody struct {
	Exists bool `json:"exists"`
}

// JSONResponse sends payload as JSON with the given status
func JSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func JSONError(w http.ResponseWriter, status int, msg string) {
	JSONResponse(w, status, ErrorBody{Error: msg})
}

func JSONMessage(w http.ResponseWriter, status int, msg string) {
	JSONResponse(w, status, MessageBody{Msg: msg})
}
