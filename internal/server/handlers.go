package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/fraudscan-cli/internal/analysis"
	"github.com/KaramelBytes/fraudscan-cli/internal/parser"
	"github.com/KaramelBytes/fraudscan-cli/internal/report"
)

var (
	// ErrNoFile is returned when a multipart upload lacks the "file" field.
	ErrNoFile = errors.New("please upload a file first")
	// ErrUploadTooLarge is returned when the body exceeds MaxUploadBytes.
	ErrUploadTooLarge = errors.New("upload too large")
	// ErrUnsupportedMedia is returned for bodies that are neither multipart nor CSV.
	ErrUnsupportedMedia = errors.New("unsupported content type (use multipart/form-data or text/csv)")
)

// handleAnalyze accepts either a multipart form with a "file" field or a raw
// text/csv body. ?format=markdown|html returns the rendered report instead
// of JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opt.MaxUploadBytes)
	name, content, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	start := time.Now()
	a := analysis.Run(content, s.rnd)
	opt := s.opt.Display
	opt.Name = name
	rep := report.New(a, opt)
	s.log.Info("analysis complete",
		zap.String("name", name),
		zap.String("run_id", rep.Summary.RunID),
		zap.Int("rows", a.Result.TotalRows),
		zap.Int("numeric_columns", len(a.Detection.NumericColumns)),
		zap.Int("flagged", len(a.Result.FraudulentRows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	body, err := rep.Render(format)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) readUpload(r *http.Request) (name, content string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(s.opt.MaxUploadBytes); err != nil {
			return "", "", fmt.Errorf("parse upload: %w", s.wrapTooLarge(err))
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return "", "", ErrNoFile
		}
		defer f.Close()
		if !parser.CanParse(hdr.Filename) {
			return "", "", fmt.Errorf("%s: %w", hdr.Filename, parser.ErrNotCSV)
		}
		b, err := io.ReadAll(f)
		if err != nil {
			return "", "", fmt.Errorf("file could not be read: %w", err)
		}
		return hdr.Filename, string(b), nil
	case mediaType == "text/csv" || strings.HasSuffix(mediaType, "+csv"):
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return "", "", fmt.Errorf("file could not be read: %w", s.wrapTooLarge(err))
		}
		return r.URL.Query().Get("name"), string(b), nil
	default:
		return "", "", ErrUnsupportedMedia
	}
}

func (s *Server) wrapTooLarge(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: limit %d bytes", ErrUploadTooLarge, s.opt.MaxUploadBytes)
	}
	return err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("analyze request rejected", zap.Int("status", status), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
