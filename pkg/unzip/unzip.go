// Package unzip transparently decompresses gzip-encoded request bodies.
package unzip

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/stayhub/wallet-service/pkg/logger"
)

// gzippedBody wraps the original body so both the gzip reader and the
// underlying stream are closed together.
type gzippedBody struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func (b *gzippedBody) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

func (b *gzippedBody) Close() error {
	if err := b.zr.Close(); err != nil {
		_ = b.body.Close()
		return err
	}
	return b.body.Close()
}

// Middleware replaces the request body with a decompressing reader
// when the client declares gzip content encoding.
func Middleware(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				zr, err := gzip.NewReader(r.Body)
				if err != nil {
					logger.Errorf("gzip request body: %s", err)
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				wrapped := &gzippedBody{body: r.Body, zr: zr}
				defer wrapped.Close()
				r.Body = wrapped
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}
