package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// FormField: одно текстовое поле multipart-формы.
type FormField struct {
	Name  string
	Value string
}

// Form описывает multipart-тело запроса. В нём текстовые поля в порядке добавления и
// файлы (фото товара, фото и видео к заявке).
type Form struct {
	Fields []FormField
	Files  []models.Upload
}

// Add добавляет текстовое поле.
func (f *Form) Add(name, value string) *Form {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
	return f
}

// Attach добавляет файлы.
func (f *Form) Attach(files ...models.Upload) *Form {
	f.Files = append(f.Files, files...)
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.Name, err)
		}
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file %s: %w", file.FileName, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", file.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
