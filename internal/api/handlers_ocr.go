package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/ocr"
)

const (
	multipartOverhead = 1024
	msgOCRFailed      = "OCR processing failed"
)

func (s *Server) processOCR(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.ocr.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes+multipartOverhead))
	if err := r.ParseMultipartForm(int64(maxBytes + multipartOverhead)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image exceeds the maximum upload size")
			return
		}
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, int64(maxBytes+1)))
	if err != nil {
		s.logger.Warn("ocr upload read failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgOCRFailed)
		return
	}

	contentType := ""
	if header != nil {
		contentType = strings.TrimSpace(header.Header.Get("Content-Type"))
	}
	scan, err := s.ocr.Extract(contentType, content)
	if err != nil {
		switch {
		case errors.Is(err, ocr.ErrImageMissing):
			writeError(w, http.StatusBadRequest, "No image provided")
		case errors.Is(err, ocr.ErrImageTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Image exceeds the maximum upload size")
		case errors.Is(err, ocr.ErrImageTypeUnsupported):
			writeError(w, http.StatusUnsupportedMediaType, "Only PNG and JPEG images are supported")
		case errors.Is(err, ocr.ErrImageInvalid):
			writeError(w, http.StatusBadRequest, "Image could not be read")
		default:
			s.logger.Error("ocr processing failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgOCRFailed)
		}
		return
	}

	s.logger.Info("ocr scan processed",
		"scan_id", scan.ID,
		"content_type", scan.ContentType,
		"width", scan.Width,
		"height", scan.Height,
		"bytes", scan.Bytes,
	)
	writeJSON(w, http.StatusOK, model.OCRResponse{
		Envelope:      model.OK("OCR processing completed successfully"),
		ExtractedData: scan.Result,
		Confidence:    scan.Confidence,
	})
}
