package client

import (
	"bufio"
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const sniffLen = 512

type OCRAPI struct {
	client *Client
}

// ProcessImage uploads a label photo as the multipart field "image".
func (a *OCRAPI) ProcessImage(ctx context.Context, filename string, image io.Reader) (model.OCRResponse, error) {
	if image == nil {
		return model.OCRResponse{}, &APIError{Status: StatusNetworkError, Message: msgNoUpload}
	}
	buffered := bufio.NewReaderSize(image, sniffLen)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		head, _ := buffered.Peek(sniffLen)
		contentType = http.DetectContentType(head)
	}

	var resp model.OCRResponse
	err := a.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathOCR,
		Body: &Multipart{
			FieldName:   "image",
			FileName:    filepath.Base(filename),
			ContentType: contentType,
			Reader:      buffered,
		},
	}, &resp)
	return resp, err
}
