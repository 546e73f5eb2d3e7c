package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

// RespondError sends a JSON error body of the form {"error": ..., "errorCode": ...}.
// The message is also recorded in logger when one is given.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message, errorCode string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		fmt.Println("[Error]", message)
	}
	body := map[string]string{"error": message}
	if errorCode != "" {
		body["errorCode"] = errorCode
	}
	RespondJSON(w, status, body)
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		fmt.Printf("[LATENCY] %s %s - %v\n", r.Method, r.URL.Path, time.Since(start))
	})
}
