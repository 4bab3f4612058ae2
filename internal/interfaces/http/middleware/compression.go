package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool - переиспользуемые gzip writer'ы (уровень 5)
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, 5)
		return w
	},
}

// compressibleTypes - ответы дашборда, которые имеет смысл сжимать.
// SVG графиков - текст и сжимается в разы
var compressibleTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"image/svg+xml",
}

func compressible(contentType string) bool {
	for _, prefix := range compressibleTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// gzipResponseWriter решает, сжимать ли ответ, при записи заголовка:
// к этому моменту handler уже выставил Content-Type
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	decided     bool
	compressing bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.decided {
		return
	}
	w.decided = true

	h := w.Header()
	if status != http.StatusNoContent && status != http.StatusNotModified &&
		h.Get("Content-Encoding") == "" && compressible(h.Get("Content-Type")) {
		w.compressing = true
		w.gz = gzipWriterPool.Get().(*gzip.Writer)
		w.gz.Reset(w.ResponseWriter)
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.decided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.compressing {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) close() {
	if !w.compressing {
		return
	}
	_ = w.gz.Close()
	w.gz.Reset(nil)
	gzipWriterPool.Put(w.gz)
}

// Compression сжимает текстовые ответы (HTML, JSON, JS, SVG) для клиентов с
// Accept-Encoding: gzip. WebSocket upgrade всегда проходит без обертки
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") || r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")

		gzw := &gzipResponseWriter{ResponseWriter: w}
		defer gzw.close()

		next.ServeHTTP(gzw, r)
	})
}
