// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Payload is an encoded form body ready to be sent.
type Payload struct {
	ContentType string
	Body        []byte
}

// Reader returns a fresh reader over the body.
func (p *Payload) Reader() io.Reader {
	return bytes.NewReader(p.Body)
}

func encodeMultipart(fields []Field, files []File) (*Payload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, fld := range fields {
		if err := mw.WriteField(fld.Name, fld.Value); err != nil {
			return nil, fmt.Errorf("writing field %q: %w", fld.Name, err)
		}
	}

	for _, file := range files {
		part, err := mw.CreateFormFile(file.Name, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("creating file part %q: %w", file.Name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("writing file part %q: %w", file.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	return &Payload{
		ContentType: mw.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}
