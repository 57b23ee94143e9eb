package adapter

import (
	"DonaTalkAPI/internal/config"
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestEventStreamAdapter(t *testing.T) {
	t.Run("Publish", func(t *testing.T) {
		w := &fakeWriter{}
		a := NewEventStreamAdapterWithWriter(w, "donatalk.chat-events")

		require.NoError(t, a.Publish(context.Background(), "user-1", []byte(`{"type":"newMessage"}`)))
		require.Len(t, w.messages, 1)
		assert.Equal(t, "user-1", string(w.messages[0].Key))
		assert.JSONEq(t, `{"type":"newMessage"}`, string(w.messages[0].Value))
		assert.False(t, w.messages[0].Time.IsZero())
		assert.Equal(t, "donatalk.chat-events", a.Topic())

		require.NoError(t, a.Close())
		assert.True(t, w.closed)
	})

	t.Run("Writer Failure", func(t *testing.T) {
		broken := errors.New("no brokers")
		a := NewEventStreamAdapterWithWriter(&fakeWriter{err: broken}, "t")

		assert.ErrorIs(t, a.Publish(context.Background(), "k", []byte("v")), broken)
	})

	t.Run("Kafka Writer Config", func(t *testing.T) {
		a := NewEventStreamAdapter(&config.AppConfig{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "events"})
		defer a.Close()

		w, ok := a.writer.(*kafkago.Writer)
		require.True(t, ok)
		assert.Equal(t, "events", w.Topic)
		assert.True(t, w.Async)
		assert.Equal(t, "events", a.Topic())
	})
}

func TestRedisAdapter(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedisAdapterFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer r.Close()

	ctx := context.Background()

	sub := r.Subscribe(ctx, "events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, r.Publish(ctx, "events", []byte("hello")))
	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Payload)

	t.Run("Unreachable Server", func(t *testing.T) {
		_, err := NewRedisAdapter(&config.AppConfig{RedisHost: "127.0.0.1", RedisPort: "1"})
		assert.Error(t, err)
	})
}

// s3Recorder stands in for an S3-compatible endpoint.
type s3Recorder struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
	types    map[string]string
}

func (s *s3Recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		s.bodies[r.URL.Path] = body
		s.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T, publicDomain string) (*StorageAdapter, *s3Recorder) {
	t.Helper()

	rec := &s3Recorder{bodies: map[string][]byte{}, types: map[string]string{}}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
	})

	cfg := &config.AppConfig{S3Bucket: "media", S3Region: "us-east-1", S3PublicDomain: publicDomain}
	return NewStorageAdapter(cfg, client), rec
}

func uploadHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="media"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["media"][0]
}

func TestStorageAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Upload", func(t *testing.T) {
		storage, rec := newTestStorage(t, "https://cdn.donatalk.app")

		stored, err := storage.Upload(ctx, uploadHeader(t, "Receipt.PNG", "image/png", []byte("png-bytes")), "chat-media")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(stored.Key, "chat-media/"))
		assert.True(t, strings.HasSuffix(stored.Key, ".png"))
		assert.Equal(t, "https://cdn.donatalk.app/"+stored.Key, stored.URL)
		assert.Equal(t, "png", stored.Format)
		assert.Equal(t, int64(len("png-bytes")), stored.Size)
		assert.Equal(t, "image/png", stored.ContentType)

		objectPath := "/media/" + stored.Key
		assert.Equal(t, []byte("png-bytes"), rec.bodies[objectPath])
		assert.Equal(t, "image/png", rec.types[objectPath])
	})

	t.Run("Sniffs Generic Content Type", func(t *testing.T) {
		storage, _ := newTestStorage(t, "")

		stored, err := storage.Upload(ctx, uploadHeader(t, "notes.txt", "application/octet-stream", []byte("plain text body")), "chat-media")
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", stored.ContentType)
		assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/"+stored.Key, stored.URL)
	})

	t.Run("Delete", func(t *testing.T) {
		storage, rec := newTestStorage(t, "")

		require.NoError(t, storage.Delete(ctx, "chat-media/a.png"))
		assert.Contains(t, rec.requests, "DELETE /media/chat-media/a.png")
	})

	t.Run("Disabled", func(t *testing.T) {
		storage := NewStorageAdapter(&config.AppConfig{}, nil)

		_, err := storage.Upload(ctx, uploadHeader(t, "a.png", "image/png", []byte("x")), "chat-media")
		assert.ErrorIs(t, err, ErrStorageDisabled)
		assert.ErrorIs(t, storage.Delete(ctx, "k"), ErrStorageDisabled)
	})
}
