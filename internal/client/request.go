package client

import (
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

type Param struct {
	Key   string
	Value string
}

// Params is an ordered query string. Empty values are never added.
type Params []Param

func (p Params) Add(key, value string) Params {
	if strings.TrimSpace(value) == "" {
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

// AddFlag adds key=true only when set.
func (p Params) AddFlag(key string, set bool) Params {
	if !set {
		return p
	}
	return append(p, Param{Key: key, Value: "true"})
}

func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// Multipart is a single-file form upload streamed to the server.
type Multipart struct {
	FieldName   string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Request describes one call. Body is either a JSON-serializable value or a
// *Multipart.
type Request struct {
	Method string
	Path   string
	Query  Params
	Body   any
	Header http.Header
}

// open streams the form through a pipe and returns the body with its
// boundary-bearing content type.
func (m *Multipart) open() (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+escapeQuotes(m.FieldName)+`"; filename="`+escapeQuotes(m.FileName)+`"`)
		contentType := m.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, m.Reader); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
