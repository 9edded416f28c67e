package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/star-ls/star-ls-go/cache"
)

func TestLoopPublishesDiagnosticsForSubscribedFile(t *testing.T) {
	c := cache.New()
	mailbox := NewMailbox(4)

	var mu sync.Mutex
	published := make(map[string][]PublishedDiagnostic)
	done := make(chan struct{}, 1)

	publish := func(path string, diags []PublishedDiagnostic) {
		mu.Lock()
		published[path] = diags
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}

	loop := NewLoop(c, mailbox, 2, publish, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	mailbox.EditorIn <- EditorMessage{Kind: Subscribe, Path: "a.star"}
	mailbox.EditorIn <- EditorMessage{Kind: SetFileText, Path: "a.star", Text: "x = 1\n"}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published diagnostics batch")
	}

	mu.Lock()
	diags, ok := published["a.star"]
	mu.Unlock()
	if !ok {
		t.Fatal("expected a published diagnostics entry for a.star")
	}
	if len(diags) != 0 {
		t.Errorf("expected zero diagnostics for valid input, got %v", diags)
	}
}

func TestLoopDoesNotPublishForUnsubscribedFile(t *testing.T) {
	c := cache.New()
	mailbox := NewMailbox(4)

	var mu sync.Mutex
	publishedCount := 0
	publish := func(path string, diags []PublishedDiagnostic) {
		mu.Lock()
		publishedCount++
		mu.Unlock()
	}

	loop := NewLoop(c, mailbox, 1, publish, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	mailbox.EditorIn <- EditorMessage{Kind: SetFileText, Path: "a.star", Text: "x = 1\n"}

	// No subscription was ever sent; give the loop a moment to (not) act.
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if publishedCount != 0 {
		t.Errorf("expected no publish calls for an unsubscribed file, got %d", publishedCount)
	}
}

func TestLoopReportsDiagnosticsForInvalidInput(t *testing.T) {
	c := cache.New()
	mailbox := NewMailbox(4)

	diagsCh := make(chan []PublishedDiagnostic, 1)
	publish := func(path string, diags []PublishedDiagnostic) {
		diagsCh <- diags
	}

	loop := NewLoop(c, mailbox, 1, publish, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	mailbox.EditorIn <- EditorMessage{Kind: Subscribe, Path: "bad.star"}
	mailbox.EditorIn <- EditorMessage{Kind: SetFileText, Path: "bad.star", Text: "def\n"}

	select {
	case diags := <-diagsCh:
		if len(diags) == 0 {
			t.Error("expected at least one diagnostic for malformed input")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
	}
}
