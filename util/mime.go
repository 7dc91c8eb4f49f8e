package util

import (
	"mime"
	"strings"
)

// DefaultContentType is used for uploads whose file extension is missing or not recognized
const DefaultContentType = "application/octet-stream"

// Common paste types. Lookups fall back to the system MIME table for anything not listed here.
var contentTypesByExt = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"log":  "text/plain; charset=utf-8",
	"md":   "text/markdown; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"json": "application/json",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"toml": "application/toml",
	"xml":  "application/xml",
	"html": "text/html; charset=utf-8",
	"htm":  "text/html; charset=utf-8",
	"css":  "text/css; charset=utf-8",
	"js":   "text/javascript; charset=utf-8",
	"go":   "text/x-go; charset=utf-8",
	"sh":   "application/x-sh",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"pdf":  "application/pdf",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tar":  "application/x-tar",
	"7z":   "application/x-7z-compressed",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"mp4":  "video/mp4",
	"webm": "video/webm",
}

// InferMIME maps the extension of filename (everything after the last dot) to a MIME type. It never fails:
// files without extension or with an unknown extension are reported as DefaultContentType.
func InferMIME(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return DefaultContentType
	}
	ext := strings.ToLower(filename[i+1:])
	if strings.ContainsAny(ext, `/\`) {
		return DefaultContentType // Dot was in a directory name
	}
	if contentType, ok := contentTypesByExt[ext]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension("." + ext); contentType != "" {
		return contentType
	}
	return DefaultContentType
}
