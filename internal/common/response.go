package common

import (
	"encoding/json"
	"net/http"
)

// FailResponse is the envelope for every failed operation. Successful
// operations embed `success: true` alongside their own fields.
type FailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, HTTPStatusFromError(err), FailResponse{Success: false, Message: Message(err)})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
