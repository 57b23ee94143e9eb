package helper

import (
	"DonaTalkAPI/internal/constant"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateUniqueFileName(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".bin"
	}

	ext = strings.ToLower(ext)

	uniqueName := fmt.Sprintf("%d-%s%s", time.Now().UTC().UnixNano(), uuid.New().String(), ext)

	return uniqueName
}

func DetectFileContentType(file multipart.File) (string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if n == 0 {
		return "", errors.New("empty file")
	}

	contentType := http.DetectContentType(buffer[:n])

	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}

	return contentType, nil
}

// MediaKindFromContentType maps a MIME type to a message type.
func MediaKindFromContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return constant.MessageTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return constant.MessageTypeVideo
	case strings.HasPrefix(contentType, "audio/"):
		return constant.MessageTypeAudio
	default:
		return constant.MessageTypeFile
	}
}

// FileFormat returns the lower-case extension of a file name without the dot.
func FileFormat(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
