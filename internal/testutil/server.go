// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-contact/internal/captcha"
)

// ContactPath is the route served by ContactServer.
const ContactPath = "/contact"

const maxMemory = 16 << 20 // Matches the 16MB upload limit of the contact endpoint

// Reply is a scripted response. Body is written verbatim.
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// JSONReply builds a contact result reply the way the contact endpoint
// writes it: {"success":true} or {"success":false,"error":"..."}.
func JSONReply(status int, success bool, errMsg string) Reply {
	data := map[string]any{"success": success}
	if errMsg != "" {
		data["error"] = errMsg
	}
	body, _ := json.Marshal(data)
	return Reply{Status: status, ContentType: "application/json", Body: string(body)}
}

// SubmittedFile is a file part received by the stub.
type SubmittedFile struct {
	Filename string
	Data     []byte
}

// Submission is a request received by the stub.
type Submission struct {
	Header       http.Header
	Fields       map[string][]string
	Files        map[string][]SubmittedFile
	CaptchaToken string
}

// ContactServer is a stub contact endpoint recording submissions and
// answering with scripted replies. When no reply is queued it answers
// {"success":true}.
type ContactServer struct {
	*httptest.Server

	provider    captcha.Provider
	mu          sync.Mutex
	replies     []Reply
	submissions []Submission
}

// NewContactServer starts a stub endpoint closed at test cleanup.
func NewContactServer(t *testing.T, provider captcha.Provider) *ContactServer {
	t.Helper()

	s := &ContactServer{provider: provider}

	r := chi.NewRouter()
	r.Post(ContactPath, s.handleContact)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// ActionURL returns the absolute URL of the contact route.
func (s *ContactServer) ActionURL() string {
	return s.URL + ContactPath
}

// Enqueue queues replies returned in order to subsequent submissions.
func (s *ContactServer) Enqueue(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

// Submissions returns the submissions received so far.
func (s *ContactServer) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

func (s *ContactServer) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	sub := Submission{
		Header:       r.Header.Clone(),
		Fields:       map[string][]string(r.MultipartForm.Value),
		Files:        make(map[string][]SubmittedFile),
		CaptchaToken: s.provider.ResponseFromRequest(r),
	}
	for name, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "bad file", http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				http.Error(w, "bad file", http.StatusBadRequest)
				return
			}
			sub.Files[name] = append(sub.Files[name], SubmittedFile{Filename: fh.Filename, Data: data})
		}
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, sub)
	reply := JSONReply(http.StatusOK, true, "")
	if len(s.replies) > 0 {
		reply = s.replies[0]
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	if reply.ContentType != "" {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}
