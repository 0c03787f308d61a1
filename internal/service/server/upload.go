package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxUploadSize = 32 << 20

var errNotAnImage = errors.New("uploaded file is not an image")

// saveUploadedFiles stores up to max files from the given multipart field
// under the upload directory and returns their public /uploads/ paths.
// Content is sniffed; anything that is not an image is rejected. The caller
// must have parsed the multipart form already.
func (s *HttpServer) saveUploadedFiles(r *http.Request, field, subdir string, max int) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		headers = headers[:max]
	}

	dir := filepath.Join(s.cfg.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}

		mtype := mimetype.Detect(data)
		if !strings.HasPrefix(mtype.String(), "image/") {
			return nil, errNotAnImage
		}

		name := uuid.NewString() + mtype.Extension()
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return nil, err
		}

		paths = append(paths, path.Join("/uploads", subdir, name))
	}

	return paths, nil
}
