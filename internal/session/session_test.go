// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/pdfchat-tui/internal/backend"
	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeBackend struct {
	setKey func(key string) (*backend.SetKeyResponse, error)
	upload func(name string, data []byte) (*backend.UploadResponse, error)
	ask    func(q string) (*backend.AskResponse, error)

	setKeyCalls int
	uploadCalls int
	askCalls    int
}

func (f *fakeBackend) SetAPIKey(_ context.Context, key string) (*backend.SetKeyResponse, error) {
	f.setKeyCalls++
	if f.setKey == nil {
		return &backend.SetKeyResponse{}, nil
	}
	return f.setKey(key)
}

func (f *fakeBackend) Upload(_ context.Context, name string, r io.Reader) (*backend.UploadResponse, error) {
	f.uploadCalls++
	data, _ := io.ReadAll(r)
	if f.upload == nil {
		return &backend.UploadResponse{}, nil
	}
	return f.upload(name, data)
}

func (f *fakeBackend) Ask(_ context.Context, q string) (*backend.AskResponse, error) {
	f.askCalls++
	if f.ask == nil {
		return &backend.AskResponse{Answer: "ok"}, nil
	}
	return f.ask(q)
}

var errDial = &backend.TransportError{Op: "POST /x", Err: errors.New("connection refused")}

func pdfDoc(name string) *document.Document {
	return document.FromBytes(name, []byte("%PDF-1.4 test"))
}

// readySession returns a session with both flags set through the flows.
func readySession(t *testing.T, fb *fakeBackend) *Session {
	t.Helper()
	s := New(fb, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "key"))
	require.NoError(t, s.IngestDocument(context.Background(), pdfDoc("doc.pdf")))
	s.DrainNotices()
	require.True(t, s.IsReady())
	return s
}

// =============================================================================
// INITIAL STATE
// =============================================================================

func TestNew_InitialState(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	c := s.Controls()

	assert.False(t, s.IsReady())
	assert.False(t, c.QuestionEnabled)
	assert.Equal(t, LabelSetKey, c.SaveLabel)
	assert.Equal(t, KeyNotSet, c.KeyStatus)
	assert.Equal(t, DocumentNone, c.DocumentLabel)
	assert.True(t, s.Transcript().IsEmpty())
	assert.False(t, s.HasNotice())
}

func TestNotify_QueuesInOrder(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	s.Notify(NoticeError, "File not found: a.pdf")
	s.Notify(NoticeInfo, "")
	s.Notify(NoticeInfo, "second")

	require.Len(t, s.Notices(), 2)
	n, ok := s.CurrentNotice()
	require.True(t, ok)
	assert.Equal(t, NoticeError, n.Kind)
	assert.Equal(t, "File not found: a.pdf", n.Text)

	s.DismissNotice()
	n, ok = s.CurrentNotice()
	require.True(t, ok)
	assert.Equal(t, "second", n.Text)

	s.DismissNotice()
	assert.False(t, s.HasNotice())
}

// =============================================================================
// CREDENTIAL FLOW
// =============================================================================

func TestRegisterCredential_BlankIsSilentNoOp(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		fb := &fakeBackend{}
		s := New(fb, nil)

		require.NoError(t, s.RegisterCredential(context.Background(), raw))
		assert.Zero(t, fb.setKeyCalls)
		assert.Equal(t, LabelSetKey, s.Controls().SaveLabel)
		assert.False(t, s.HasNotice())
	}
}

func TestRegisterCredential_SendsTrimmedKey(t *testing.T) {
	var got string
	fb := &fakeBackend{setKey: func(key string) (*backend.SetKeyResponse, error) {
		got = key
		return &backend.SetKeyResponse{}, nil
	}}
	s := New(fb, nil)

	require.NoError(t, s.RegisterCredential(context.Background(), "  abc  "))
	assert.Equal(t, "abc", got)
}

func TestBeginCredential_ShowsSavingLabel(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	key, ok := s.BeginCredential(" k ")
	require.True(t, ok)
	assert.Equal(t, "k", key)
	assert.Equal(t, LabelSaving, s.Controls().SaveLabel)
	assert.True(t, s.Controls().Saving)

	// The label timer never clobbers an in-progress save.
	s.ResetSaveLabel()
	assert.Equal(t, LabelSaving, s.Controls().SaveLabel)
}

func TestRegisterCredential_Success(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))

	c := s.Controls()
	assert.True(t, s.Readiness().CredentialAccepted())
	assert.False(t, s.IsReady())
	assert.True(t, c.KeyAccepted)
	assert.Equal(t, KeySaved, c.KeyStatus)
	assert.Equal(t, LabelUpdated, c.SaveLabel)
	assert.False(t, s.HasNotice(), "no models means no notice")

	s.ResetSaveLabel()
	assert.Equal(t, LabelSetKey, s.Controls().SaveLabel)
}

func TestRegisterCredential_ModelsNotice(t *testing.T) {
	fb := &fakeBackend{setKey: func(string) (*backend.SetKeyResponse, error) {
		return &backend.SetKeyResponse{Models: []string{"a", "b", "c"}}, nil
	}}
	s := New(fb, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))

	n, ok := s.CurrentNotice()
	require.True(t, ok)
	assert.Equal(t, NoticeInfo, n.Kind)
	assert.Equal(t, "Key Accepted! Available Models: a, b, c", n.Text)
	assert.Equal(t, []string{"a", "b", "c"}, s.Controls().Models)

	s.DismissNotice()
	assert.False(t, s.HasNotice())
}

func TestRegisterCredential_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotice string
	}{
		{"server message", &backend.APIError{Status: 400, Message: "API key is required"}, "API key is required"},
		{"no server message", &backend.APIError{Status: 500}, NoticeKeyFailed},
		{"transport", errDial, NoticeKeyConnect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{setKey: func(string) (*backend.SetKeyResponse, error) { return nil, tc.err }}
			s := New(fb, nil)

			err := s.RegisterCredential(context.Background(), "k")
			assert.Error(t, err)
			assert.False(t, s.Readiness().CredentialAccepted())
			assert.Equal(t, LabelSetKey, s.Controls().SaveLabel)
			assert.Equal(t, KeyNotSet, s.Controls().KeyStatus)

			n, ok := s.CurrentNotice()
			require.True(t, ok)
			assert.Equal(t, NoticeError, n.Kind)
			assert.Equal(t, tc.wantNotice, n.Text)
		})
	}
}

func TestRegisterCredential_Repeatable(t *testing.T) {
	calls := 0
	fb := &fakeBackend{setKey: func(string) (*backend.SetKeyResponse, error) {
		calls++
		if calls == 1 {
			return nil, &backend.APIError{Status: 401, Message: "bad key"}
		}
		return &backend.SetKeyResponse{}, nil
	}}
	s := New(fb, nil)

	assert.Error(t, s.RegisterCredential(context.Background(), "bad"))
	assert.False(t, s.Readiness().CredentialAccepted())
	assert.NoError(t, s.RegisterCredential(context.Background(), "good"))
	assert.True(t, s.Readiness().CredentialAccepted())
	assert.Equal(t, 2, fb.setKeyCalls)
}

// =============================================================================
// INGESTION FLOW
// =============================================================================

func TestIngestDocument_RejectsNonPDFWithoutNetwork(t *testing.T) {
	for _, credential := range []bool{false, true} {
		fb := &fakeBackend{}
		s := New(fb, nil)
		if credential {
			require.NoError(t, s.RegisterCredential(context.Background(), "k"))
		}

		err := s.IngestDocument(context.Background(), document.FromBytes("notes.txt", []byte("hi")))
		assert.ErrorIs(t, err, ErrNotPDF)
		assert.Zero(t, fb.uploadCalls)
		assert.False(t, s.Readiness().DocumentIngested())

		n, ok := s.CurrentNotice()
		require.True(t, ok)
		assert.Equal(t, NoticeNotPDF, n.Text)
	}
}

func TestIngestDocument_RequiresCredentialWithoutNetwork(t *testing.T) {
	fb := &fakeBackend{}
	s := New(fb, nil)

	err := s.IngestDocument(context.Background(), pdfDoc("a.pdf"))
	assert.ErrorIs(t, err, ErrCredentialRequired)
	assert.Zero(t, fb.uploadCalls)
	assert.Zero(t, fb.setKeyCalls)

	n, _ := s.CurrentNotice()
	assert.Equal(t, NoticeKeyRequired, n.Text)
	assert.Equal(t, DocumentNone, s.Controls().DocumentLabel)
}

func TestBeginIngest_OptimisticLabels(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))
	s.SetDropHover(true)

	require.NoError(t, s.BeginIngest(pdfDoc("paper.pdf")))
	c := s.Controls()
	assert.Equal(t, "Uploading: paper.pdf", c.DocumentLabel)
	assert.Equal(t, StatusProcessing, c.ChatStatus)
	assert.Equal(t, StatusKindBusy, c.ChatStatusKind)
	assert.False(t, c.DropHover)
	assert.True(t, c.Uploading)

	assert.ErrorIs(t, s.BeginIngest(pdfDoc("other.pdf")), ErrUploadInProgress)
	assert.Equal(t, "Uploading: paper.pdf", s.Controls().DocumentLabel)
}

func TestIngestDocument_Success(t *testing.T) {
	var gotName, gotData string
	fb := &fakeBackend{upload: func(name string, data []byte) (*backend.UploadResponse, error) {
		gotName, gotData = name, string(data)
		return &backend.UploadResponse{Message: "File processed successfully."}, nil
	}}
	s := New(fb, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))

	require.NoError(t, s.IngestDocument(context.Background(), pdfDoc("paper.pdf")))
	assert.Equal(t, "paper.pdf", gotName)
	assert.Equal(t, "%PDF-1.4 test", gotData)

	c := s.Controls()
	assert.True(t, s.IsReady())
	assert.Equal(t, "paper.pdf", c.DocumentLabel)
	assert.Equal(t, StatusReady, c.ChatStatus)
	assert.True(t, c.ChatActive)
	assert.True(t, c.QuestionEnabled)
	assert.True(t, c.FocusQuestion)
	assert.Equal(t, "paper.pdf", s.Document().Name)

	entries := s.Transcript().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.RoleAssistant, entries[0].Role)
	assert.Equal(t, "I've analyzed **paper.pdf**. You can now ask questions about it!", entries[0].Text)

	s.FocusHandled()
	assert.False(t, s.Controls().FocusQuestion)
}

func TestIngestDocument_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotice string
	}{
		{"server message", &backend.APIError{Status: 400, Message: "Invalid file type. Only PDF allowed."}, "Invalid file type. Only PDF allowed."},
		{"no server message", &backend.APIError{Status: 500}, NoticeUploadFailed},
		{"transport", errDial, NoticeUploadConnect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{upload: func(string, []byte) (*backend.UploadResponse, error) { return nil, tc.err }}
			s := New(fb, nil)
			require.NoError(t, s.RegisterCredential(context.Background(), "k"))

			assert.Error(t, s.IngestDocument(context.Background(), pdfDoc("a.pdf")))

			c := s.Controls()
			assert.False(t, s.Readiness().DocumentIngested())
			assert.False(t, c.QuestionEnabled)
			assert.False(t, c.Uploading)
			assert.Equal(t, DocumentFailed, c.DocumentLabel)
			assert.Equal(t, StatusError, c.ChatStatus)
			assert.True(t, s.Transcript().IsEmpty())

			n, ok := s.CurrentNotice()
			require.True(t, ok)
			assert.Equal(t, tc.wantNotice, n.Text)
		})
	}
}

func TestIngestDocument_SecondDocumentKeepsGate(t *testing.T) {
	fb := &fakeBackend{}
	s := readySession(t, fb)

	require.NoError(t, s.IngestDocument(context.Background(), pdfDoc("second.pdf")))
	assert.True(t, s.IsReady())
	assert.Equal(t, 2, fb.uploadCalls)
	assert.Equal(t, "second.pdf", s.Document().Name)
	assert.Equal(t, 2, s.Transcript().Len())

	// A failed re-upload does not close the gate.
	fb.upload = func(string, []byte) (*backend.UploadResponse, error) { return nil, errDial }
	assert.Error(t, s.IngestDocument(context.Background(), pdfDoc("third.pdf")))
	assert.True(t, s.IsReady())
}

func TestIngestDocument_OrderIndependentGate(t *testing.T) {
	// Credential accepted after an earlier rejected upload still opens the gate
	// only once a document is ingested.
	fb := &fakeBackend{}
	s := New(fb, nil)
	assert.Error(t, s.IngestDocument(context.Background(), pdfDoc("a.pdf")))
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))
	assert.False(t, s.IsReady())
	require.NoError(t, s.IngestDocument(context.Background(), pdfDoc("a.pdf")))
	assert.True(t, s.IsReady())
}

// =============================================================================
// CONVERSATION FLOW
// =============================================================================

func TestSubmitQuestion_BlankIsNoOp(t *testing.T) {
	fb := &fakeBackend{}
	s := readySession(t, fb)
	before := s.Transcript().Len()

	for _, text := range []string{"", "  ", "\n\t"} {
		require.NoError(t, s.SubmitQuestion(context.Background(), text))
	}
	assert.Equal(t, before, s.Transcript().Len())
	assert.Zero(t, fb.askCalls)
	assert.True(t, s.Controls().QuestionEnabled)
}

func TestSubmitQuestion_GateClosedIsNoOp(t *testing.T) {
	fb := &fakeBackend{}
	s := New(fb, nil)
	require.NoError(t, s.RegisterCredential(context.Background(), "k"))

	require.NoError(t, s.SubmitQuestion(context.Background(), "hello"))
	assert.True(t, s.Transcript().IsEmpty())
	assert.Zero(t, fb.askCalls)
}

func TestBeginQuestion_PendingAndDisabled(t *testing.T) {
	s := readySession(t, &fakeBackend{})
	before := s.Transcript().Len()

	q, ok := s.BeginQuestion("  What is X?  ")
	require.True(t, ok)
	assert.Equal(t, "What is X?", q)

	entries := s.Transcript().Entries()
	require.Len(t, entries, before+2)
	assert.Equal(t, model.RoleUser, entries[before].Role)
	assert.Equal(t, "What is X?", entries[before].Text)
	assert.True(t, entries[before+1].Pending)
	assert.Equal(t, model.PendingText, entries[before+1].Text)

	assert.True(t, s.InFlight())
	assert.False(t, s.Controls().QuestionEnabled)
	assert.False(t, s.CanSubmit())

	// A second submission while one is outstanding is refused.
	_, ok = s.BeginQuestion("again")
	assert.False(t, ok)
	assert.Equal(t, before+2, s.Transcript().Len())
}

func TestSubmitQuestion_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *backend.AskResponse
		err  error
		want string
	}{
		{"answer", &backend.AskResponse{Answer: "X is **Y**.\nMore."}, nil, "X is **Y**.\nMore."},
		{"server error", nil, &backend.APIError{Status: 500, Message: "quota exceeded"}, "**Error:** quota exceeded"},
		{"server error without message", nil, &backend.APIError{Status: 502}, "**Error:** Could not reach server."},
		{"transport", nil, errDial, "**Error:** Could not reach server."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBackend{ask: func(string) (*backend.AskResponse, error) { return tc.resp, tc.err }}
			s := readySession(t, fb)
			before := s.Transcript().Len()

			_ = s.SubmitQuestion(context.Background(), "What is X?")

			entries := s.Transcript().Entries()
			require.Len(t, entries, before+2)
			assert.Equal(t, model.RoleUser, entries[before].Role)
			assert.Equal(t, model.RoleAssistant, entries[before+1].Role)
			assert.Equal(t, tc.want, entries[before+1].Text)
			assert.False(t, s.Transcript().HasPending())
			assert.False(t, s.InFlight())
			assert.True(t, s.Controls().QuestionEnabled)
			assert.True(t, s.Controls().FocusQuestion)
			assert.False(t, s.HasNotice(), "question errors are inline, not blocking")
		})
	}
}

// =============================================================================
// END TO END
// =============================================================================

func newFakeServer(t *testing.T, askFails bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/set_api_key", func(w http.ResponseWriter, r *http.Request) {
		var req backend.SetKeyRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.APIKey == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"API key is required"}`))
			return
		}
		w.Write([]byte(`{"message":"API key set successfully"}`))
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"No file part"}`))
			return
		}
		w.Write([]byte(`{"message":"File processed successfully."}`))
	})
	mux.HandleFunc("/ask", func(w http.ResponseWriter, r *http.Request) {
		if askFails {
			hj, ok := w.(http.Hijacker)
			if ok {
				conn, _, _ := hj.Hijack()
				conn.Close()
				return
			}
		}
		var req backend.AskRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(backend.AskResponse{Answer: "Answer to: " + req.Question})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEnd(t *testing.T) {
	srv := newFakeServer(t, false)
	client, err := backend.New(srv.URL)
	require.NoError(t, err)
	s := New(client, nil)
	ctx := context.Background()

	require.NoError(t, s.RegisterCredential(ctx, "secret"))
	assert.True(t, s.Readiness().CredentialAccepted())
	assert.False(t, s.HasNotice())

	require.NoError(t, s.IngestDocument(ctx, pdfDoc("report.pdf")))
	assert.True(t, s.Readiness().DocumentIngested())
	require.Equal(t, 1, s.Transcript().Len())
	assert.True(t, strings.Contains(s.Transcript().Last().Text, "**report.pdf**"))
	assert.True(t, s.Controls().QuestionEnabled)

	require.NoError(t, s.SubmitQuestion(ctx, "What is X?"))
	entries := s.Transcript().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "What is X?", entries[1].Text)
	assert.Equal(t, "Answer to: What is X?", entries[2].Text)
	assert.False(t, s.Transcript().HasPending())

	require.NoError(t, s.SubmitQuestion(ctx, "And Y?"))
	entries = s.Transcript().Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, "Answer to: And Y?", entries[4].Text)
	assert.True(t, s.Controls().QuestionEnabled)
}

func TestEndToEnd_AskTransportFailure(t *testing.T) {
	srv := newFakeServer(t, true)
	client, err := backend.New(srv.URL)
	require.NoError(t, err)
	s := New(client, nil)
	ctx := context.Background()

	require.NoError(t, s.RegisterCredential(ctx, "secret"))
	require.NoError(t, s.IngestDocument(ctx, pdfDoc("report.pdf")))
	before := s.Transcript().Len()

	err = s.SubmitQuestion(ctx, "What is X?")
	assert.True(t, backend.IsTransportError(err))

	entries := s.Transcript().Entries()
	require.Len(t, entries, before+2)
	assert.Equal(t, AskUnreachable, entries[before+1].Text)
	assert.True(t, s.Controls().QuestionEnabled)
	assert.True(t, s.CanSubmit())
}

func TestEndToEnd_AskErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ask" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL)
	require.NoError(t, err)
	s := New(client, nil)
	ctx := context.Background()

	require.NoError(t, s.RegisterCredential(ctx, "secret"))
	require.NoError(t, s.IngestDocument(ctx, pdfDoc("report.pdf")))

	err = s.SubmitQuestion(ctx, "What is X?")
	assert.True(t, backend.IsAPIError(err))
	assert.Equal(t, AskUnreachable, s.Transcript().Last().Text)
	assert.True(t, s.CanSubmit())
}
