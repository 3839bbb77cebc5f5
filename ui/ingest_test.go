package ui

import (
	"testing"

	"scribetui/api"
)

func TestIngestSubmitRejectsNonYouTubeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "other host", url: "https://example.com/watch?v=dQw4w9WgXcQ"},
		{name: "not a url", url: "dQw4w9WgXcQ"},
		{name: "ftp scheme", url: "ftp://youtube.com/watch?v=dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAppView(t)
			a.openIngest()
			a.ingest.urlInput.SetValue(tt.url)

			cmd := a.submitIngestCmd()
			if cmd != nil {
				t.Fatal("an invalid URL must never reach the wire")
			}
			if a.ingest.request.phase != phaseFailed || a.ingest.request.errMsg == "" {
				t.Errorf("phase=%v errMsg=%q, want local failure with message",
					a.ingest.request.phase, a.ingest.request.errMsg)
			}
		})
	}
}

func TestIngestSubmitAcceptsYouTubeURL(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")

	cmd := a.submitIngestCmd()
	if cmd == nil {
		t.Fatal("a valid URL must produce an import request")
	}
	if !a.ingest.request.pending() {
		t.Error("expected pending after submit")
	}

	if again := a.submitIngestCmd(); again != nil {
		t.Error("submit while pending must not start another request")
	}
}

func TestIngestImportFailureKeepsFormEditable(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.ingest.titleInput.SetValue("standup")
	a.submitIngestCmd()
	gen := a.ingest.request.gen

	a, cmd := a.handleImportResult(importResultMsg{gen: gen, err: &api.Error{StatusCode: 422, Message: "url is not a video"}})
	if cmd != nil {
		t.Error("a failed import stays inside the dialog")
	}
	if a.ingest.request.errMsg != "url is not a video" {
		t.Errorf("errMsg = %q, want the server message verbatim", a.ingest.request.errMsg)
	}
	if a.ingest.urlInput.Value() == "" || a.ingest.titleInput.Value() == "" {
		t.Error("field values must survive a failed attempt")
	}
}

func TestIngestImportUnauthorizedExpiresSession(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.submitIngestCmd()
	gen := a.ingest.request.gen

	_, cmd := a.handleImportResult(importResultMsg{gen: gen, err: api.ErrUnauthorized})
	if cmd == nil {
		t.Fatal("unauthorized must be reported upward")
	}
	if _, ok := cmd().(sessionExpiredMsg); !ok {
		t.Fatalf("emitted %T, want sessionExpiredMsg", cmd())
	}
}

func TestIngestImportSuccessSchedulesAutoClose(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.submitIngestCmd()
	gen := a.ingest.request.gen

	a, cmd := a.handleImportResult(importResultMsg{gen: gen})
	if a.ingest.request.phase != phaseSucceeded {
		t.Fatalf("phase = %v, want succeeded", a.ingest.request.phase)
	}
	if cmd == nil {
		t.Fatal("success must schedule the auto-close tick")
	}

	a, closeCmd := a.handleIngestAutoClose(ingestAutoCloseMsg{gen: a.ingest.request.gen})
	if a.ingest.visible {
		t.Error("auto-close must dismiss the dialog")
	}
	if closeCmd == nil {
		t.Fatal("auto-close must notify the content screen")
	}
	if _, ok := closeCmd().(importCompletedMsg); !ok {
		t.Fatalf("emitted %T, want importCompletedMsg", closeCmd())
	}
}

func TestIngestAutoCloseIgnoredAfterDismissal(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.submitIngestCmd()
	gen := a.ingest.request.gen
	a, _ = a.handleImportResult(importResultMsg{gen: gen})

	// The user closed the dialog before the tick fired
	tickGen := a.ingest.request.gen
	a.ingest.close()

	a, cmd := a.handleIngestAutoClose(ingestAutoCloseMsg{gen: tickGen})
	if cmd != nil {
		t.Error("a tick for a dismissed dialog must do nothing")
	}
}

func TestIngestStaleResultDropped(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.submitIngestCmd()
	staleGen := a.ingest.request.gen
	a.ingest.close()

	a, cmd := a.handleImportResult(importResultMsg{gen: staleGen})
	if cmd != nil {
		t.Error("a result for a closed dialog must be dropped")
	}
	if a.ingest.request.phase != phaseIdle {
		t.Errorf("phase = %v, want idle", a.ingest.request.phase)
	}
}

func TestIngestCloseResetsEverything(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://youtu.be/dQw4w9WgXcQ")
	a.ingest.titleInput.SetValue("standup")
	a.ingest.videoID = "dQw4w9WgXcQ"
	a.ingest.request.fail("boom")

	a.ingest.close()

	if a.ingest.visible {
		t.Error("dialog should be hidden")
	}
	if a.ingest.urlInput.Value() != "" || a.ingest.titleInput.Value() != "" {
		t.Error("field values must not survive a close")
	}
	if a.ingest.videoID != "" {
		t.Error("the extracted video id must be cleared")
	}
	if a.ingest.request.phase != phaseIdle || a.ingest.request.errMsg != "" {
		t.Error("request state must be reset on close")
	}
}

func TestIngestVideoIDPreview(t *testing.T) {
	a := newTestAppView(t)
	a.openIngest()
	a.ingest.urlInput.SetValue("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	a.ingest.videoID = "dQw4w9WgXcQ"

	view := a.renderIngest(100, 40)
	if view == "" {
		t.Fatal("expected a rendered dialog")
	}
}
