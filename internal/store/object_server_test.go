package store

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type storedObject struct {
	body        []byte
	contentType string
	modified    time.Time
}

// objectServer is an in-memory S3 endpoint speaking path-style requests:
// /<bucket>/ for bucket calls and /<bucket>/<key> for object calls.
type objectServer struct {
	*httptest.Server

	mu      sync.Mutex
	buckets map[string]map[string]storedObject
	// denied keys answer 403 AccessDenied.
	denied map[string]bool
}

func newObjectServer(t *testing.T, buckets ...string) *objectServer {
	t.Helper()

	s := &objectServer{
		buckets: make(map[string]map[string]storedObject),
		denied:  make(map[string]bool),
	}
	for _, b := range buckets {
		s.buckets[b] = make(map[string]storedObject)
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// host is the server address without the scheme.
func (s *objectServer) host() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *objectServer) object(bucket, key string) (storedObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.buckets[bucket][key]
	return obj, ok
}

func (s *objectServer) hasBucket(bucket string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.buckets[bucket]
	return ok
}

func (s *objectServer) put(bucket, key, contentType, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets[bucket][key] = storedObject{body: []byte(body), contentType: contentType, modified: time.Now().UTC()}
}

func (s *objectServer) deny(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.denied[key] = true
}

func (s *objectServer) handle(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.denied[key] {
		writeS3Error(w, r, http.StatusForbidden, "AccessDenied", key)
		return
	}

	objects, ok := s.buckets[bucket]
	if key == "" {
		switch r.Method {
		case http.MethodHead, http.MethodGet:
			if !ok {
				writeS3Error(w, r, http.StatusNotFound, "NoSuchBucket", key)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			if !ok {
				s.buckets[bucket] = make(map[string]storedObject)
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if !ok {
		writeS3Error(w, r, http.StatusNotFound, "NoSuchBucket", key)
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, err := readObjectBody(r)
		if err != nil {
			writeS3Error(w, r, http.StatusBadRequest, "IncompleteBody", key)
			return
		}
		obj := storedObject{body: body, contentType: r.Header.Get("Content-Type"), modified: time.Now().UTC()}
		objects[key] = obj
		w.Header().Set("ETag", etag(obj.body))
		w.WriteHeader(http.StatusOK)

	case http.MethodGet, http.MethodHead:
		obj, found := objects[key]
		if !found {
			writeS3Error(w, r, http.StatusNotFound, "NoSuchKey", key)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.body)))
		w.Header().Set("ETag", etag(obj.body))
		w.Header().Set("Last-Modified", obj.modified.Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(obj.body)
		}

	case http.MethodDelete:
		delete(objects, key)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeS3Error(w http.ResponseWriter, r *http.Request, status int, code, key string) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("x-amz-request-id", "test-request")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Error><Code>%s</Code><Message>%s</Message><Key>%s</Key><RequestId>test-request</RequestId></Error>`,
		code, code, key)
}

func etag(body []byte) string {
	sum := md5.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// readObjectBody returns the object payload, decoding aws-chunked uploads.
func readObjectBody(r *http.Request) ([]byte, error) {
	chunked := strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") ||
		r.Header.Get("X-Amz-Decoded-Content-Length") != "" ||
		strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-")
	if !chunked {
		return io.ReadAll(r.Body)
	}

	var out bytes.Buffer
	br := bufio.NewReader(r.Body)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out.Bytes(), nil
		}
		if _, err = io.CopyN(&out, br, size); err != nil {
			return nil, err
		}
		if _, err = br.Discard(2); err != nil {
			return nil, err
		}
	}
}
