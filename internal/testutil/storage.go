package testutil

import (
	"DonaTalkAPI/internal/model"
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage records uploads and deletions instead of talking to S3.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	UploadErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(_ context.Context, file *multipart.FileHeader, folder string) (*model.StoredMedia, error) {
	if s.UploadErr != nil {
		return nil, s.UploadErr
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}

	ext := path.Ext(file.Filename)
	key := path.Join(folder, uuid.NewString()+ext)

	s.mu.Lock()
	s.objects[key] = buf.Bytes()
	s.mu.Unlock()

	return &model.StoredMedia{
		URL:         "https://media.example.com/" + key,
		Key:         key,
		Format:      strings.TrimPrefix(ext, "."),
		Size:        int64(buf.Len()),
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *MemoryStorage) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *MemoryStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// FileHeader builds a multipart file header the way net/http parses an upload.
func FileHeader(field, filename, contentType string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_ = req.ParseMultipartForm(1 << 20)

	return req.MultipartForm.File[field][0]
}
