package handlers

import (
	"fmt"
	"net/http"
)

// Root godoc
// @Summary Liveness string
// @Tags Health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Backend server is running!")
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
