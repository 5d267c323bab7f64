package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
)

// okResponse is the bare success envelope for mutating operations.
type okResponse struct {
	Success bool `json:"success"`
}

// fileRequest is the shared POST body: an encoded file list plus, for
// feedback uploads, the target submission timestamp. A nil Files slice means
// the payload was absent, which the services reject.
type fileRequest struct {
	Files     []codec.File `json:"files"`
	Timestamp string       `json:"timestamp"`
}

func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return common.Invalidf("Request body is not valid JSON")
	}
	return nil
}

func listOnly(r *http.Request) bool {
	return r.URL.Query().Get("list_only") == "true"
}
