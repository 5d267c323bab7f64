// Package codec converts between in-memory file collections and the
// base64-encoded wire lists carried by exchange requests and responses.
package codec

import (
	"encoding/base64"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
)

// File is the wire form of a single file entry. Content is base64-encoded
// and omitted entirely in list-only responses.
type File struct {
	Path    string  `json:"path"`
	Content *string `json:"content,omitempty"`
}

// Pack encodes a collection for transmission. With listOnly set only the
// paths are kept, saving bandwidth for directory listings.
func Pack(files model.FileCollection, listOnly bool) []File {
	packed := make([]File, 0, len(files))
	for _, f := range files {
		wf := File{Path: f.Path}
		if !listOnly {
			content := base64.StdEncoding.EncodeToString(f.Content)
			wf.Content = &content
		}
		packed = append(packed, wf)
	}
	return packed
}

// Unpack decodes a client-supplied wire list. It either decodes the whole
// list or fails on the first undecodable entry without partial results.
// Duplicate paths keep the first occurrence's position and the last
// occurrence's content.
func Unpack(wire []File) (model.FileCollection, error) {
	files := make(model.FileCollection, 0, len(wire))
	for _, wf := range wire {
		var content []byte
		if wf.Content != nil {
			decoded, err := base64.StdEncoding.DecodeString(*wf.Content)
			if err != nil {
				return nil, common.Invalidf("Content cannot be base64 decoded")
			}
			content = decoded
		}
		files.Put(wf.Path, content)
	}
	return files, nil
}
