package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/stratiz/internal/store"
)

var pointSchema = &Schema{
	Name: "test-point",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
			"y": map[string]any{"type": "integer"},
		},
		"required":             []any{"x", "y"},
		"additionalProperties": false,
	},
}

// recordingRepo captures LLM events; the other EventRepo methods are unused.
type recordingRepo struct {
	store.EventRepo

	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != StopEnd {
		t.Fatalf("first response = %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"b":2}` {
		t.Fatalf("second content = %s", resp.Content)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[1].Messages[0].Content != "second" {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"x":1}`)},
		MockResponse{Content: json.RawMessage(`{"x":1,"y":2}`)},
	)

	_, err := mock.Generate(context.Background(), Request{Schema: pointSchema})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || string(e.Content) != `{"x":1}` {
		t.Fatalf("expected raw content on error, got %v", err)
	}

	if _, err := mock.Generate(context.Background(), Request{Schema: pointSchema}); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
}

func TestRetry_RecoversFromTransientErrors(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: ErrRateLimited}},
		MockResponse{Err: &Error{Kind: ErrUnavailable}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 2}, 0)
	p.(*retryProvider).sleep = noSleep

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(mock.Calls()); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestRetry_StopsOnPermanentErrors(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantKind  error
	}{
		{"rejected", []MockResponse{{Err: &Error{Kind: ErrRejected}}, {Content: json.RawMessage(`{}`)}}, 1, ErrRejected},
		{"truncated", []MockResponse{{Err: &Error{Kind: ErrTruncated}}, {Content: json.RawMessage(`{}`)}}, 1, ErrTruncated},
		{"invalid retried once", []MockResponse{
			{Err: &Error{Kind: ErrInvalidResponse}},
			{Err: &Error{Kind: ErrInvalidResponse}},
			{Content: json.RawMessage(`{}`)},
		}, 2, ErrInvalidResponse},
		{"attempts exhausted", []MockResponse{
			{Err: &Error{Kind: ErrUnavailable}},
			{Err: &Error{Kind: ErrUnavailable}},
			{Err: &Error{Kind: ErrUnavailable}},
			{Content: json.RawMessage(`{}`)},
		}, 3, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 2}, 0)
			p.(*retryProvider).sleep = noSleep

			_, err := p.Generate(context.Background(), Request{})
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("err = %v, want %v", err, tt.wantKind)
			}
			if n := len(mock.Calls()); n != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: ErrUnavailable}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBackoff(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}}

	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second} {
		got := r.backoff(attempt, errors.New("x"))
		lo, hi := time.Duration(float64(base)*0.8), time.Duration(float64(base)*1.2)
		if got < lo || got > hi {
			t.Errorf("backoff(%d) = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}

	got := r.backoff(0, &Error{Kind: ErrRateLimited, RetryAfter: 7 * time.Second})
	if got != 7*time.Second {
		t.Errorf("backoff with RetryAfter = %v, want 7s", got)
	}
}

func TestLogging_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"x":1,"y":2}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &Error{Kind: ErrRateLimited}},
	)
	p := WithLogging(mock, ProviderMock, repo)
	ctx := WithPurpose(context.Background(), "explain")

	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}, Schema: pointSchema}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "explain" || ok.Provider != ProviderMock || ok.InputTokens != 3 || ok.OutputTokens != 4 {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ResponseBody != `{"x":1,"y":2}` {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
	want := "[system]\nsys\n\n[user]\nhello\n\n[schema: test-point]\n"
	if len(ok.RequestBody) < len(want) || ok.RequestBody[:len(want)] != want {
		t.Errorf("request body = %q", ok.RequestBody)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLogging_RepoFailureDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, repo)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "explain")); got != "explain" {
		t.Errorf("purpose = %q", got)
	}
}

func TestNew_MockProviderIsWrapped(t *testing.T) {
	p, err := New(context.Background(), DefaultConfig(ProviderMock), &recordingRepo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*retryProvider); !ok {
		t.Fatalf("provider = %T, want *retryProvider", p)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestNew_RejectsMissingKey(t *testing.T) {
	if _, err := New(context.Background(), DefaultConfig(ProviderAnthropic), nil); err == nil {
		t.Fatal("expected error for missing API key")
	}
	if _, err := New(context.Background(), DefaultConfig("bogus"), nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
