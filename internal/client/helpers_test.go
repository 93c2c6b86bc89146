package client

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docqa/backend/internal/extract"
	"github.com/docqa/backend/internal/testutil"
)

type notificationRecorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *notificationRecorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *notificationRecorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.got))
	copy(out, r.got)
	return out
}

type harness struct {
	server   *testutil.TestServer
	answerer *testutil.MockAnswerer
	api      *APIClient
	session  *Session
	notes    *notificationRecorder
	upload   *UploadFlow
	chat     *ChatFlow
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	answerer := testutil.NewMockAnswerer("The report covers quarterly revenue.")
	server := testutil.NewTestServer(t, answerer)
	h := &harness{
		server:   server,
		answerer: answerer,
		api:      NewAPIClient(server.URL, server.Client()),
		session:  NewSession(),
		notes:    &notificationRecorder{},
	}
	h.upload = NewUploadFlow(h.api, h.session, h.notes, UploadOptions{ProgressInterval: 5 * time.Millisecond})
	h.chat = NewChatFlow(h.api, h.session, h.notes)
	return h
}

func pdfFile(name, body string) File {
	return File{Name: name, Type: extract.MIMEPDF, Size: int64(len(body)), Body: strings.NewReader(body)}
}
