package backend

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/bytedance/sonic"
)

// File is an uploaded file forwarded to the backend.
type File struct {
	FileName    string
	ContentType string
	Content     []byte
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field string
	file  File
}

// Form is a multipart/form-data body. Field order is preserved.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a plain text field.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetJSON appends a field holding the JSON encoding of v, which is how the backend
// receives nested values (tags, location, schedules) inside multipart bodies.
func (f *Form) SetJSON(name string, v interface{}) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode form field %s: %w", name, err)
	}
	f.Set(name, string(b))
	return nil
}

// Attach appends a file part. Nil or empty files are ignored.
func (f *Form) Attach(field string, file *File) *Form {
	if file == nil || len(file.Content) == 0 {
		return f
	}
	f.files = append(f.files, formFile{field: field, file: *file})
	return f
}

// Value returns the first value recorded for name.
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// HasFile reports whether a file was attached under field.
func (f *Form) HasFile(field string) bool {
	for _, ff := range f.files {
		if ff.field == field {
			return true
		}
	}
	return false
}

// Encode renders the body and returns it with its Content-Type header value.
func (f *Form) Encode() ([]byte, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}
	for _, ff := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ff.field, ff.file.FileName))
		ct := ff.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(ff.file.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
