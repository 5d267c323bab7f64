package model

// FileEntry is one file in a collection: a relative path and its raw bytes.
type FileEntry struct {
	Path    string
	Content []byte
}

// FileCollection is an ordered sequence of file entries. Paths are unique
// within a collection; on a duplicate path the last write wins and the entry
// keeps the position of the first occurrence.
type FileCollection []FileEntry

// Put inserts or overwrites the entry for path.
func (fc *FileCollection) Put(path string, content []byte) {
	for i := range *fc {
		if (*fc)[i].Path == path {
			(*fc)[i].Content = content
			return
		}
	}
	*fc = append(*fc, FileEntry{Path: path, Content: content})
}

// Clone returns a deep copy so that stores and callers never share backing
// arrays.
func (fc FileCollection) Clone() FileCollection {
	if fc == nil {
		return nil
	}
	out := make(FileCollection, len(fc))
	for i, f := range fc {
		content := make([]byte, len(f.Content))
		copy(content, f.Content)
		out[i] = FileEntry{Path: f.Path, Content: content}
	}
	return out
}
