package domain

type FileKind string

const (
	FileKindFile FileKind = "file"
	FileKindDir  FileKind = "dir"
)

// FileEntry is the metadata the file store reports for one path.
type FileEntry struct {
	Kind     FileKind `json:"type"`
	Path     string   `json:"path"`
	Basename string   `json:"basename"`
	Size     int64    `json:"size"`
}

func (e FileEntry) IsDir() bool  { return e.Kind == FileKindDir }
func (e FileEntry) IsFile() bool { return e.Kind == FileKindFile }
