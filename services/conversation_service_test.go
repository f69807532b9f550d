package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamadash/models"
)

// fakeClient answers Generate from a function and records every prompt it
// was sent.
type fakeClient struct {
	mu        sync.Mutex
	prompts   []string
	generate  func(model, prompt string) (string, error)
	installed []models.Model
	listErr   error
	pullErr   error
	delErr    error
	pulled    []string
	deleted   []string
}

func (f *fakeClient) Heartbeat(ctx context.Context) error {
	return f.listErr
}

func (f *fakeClient) ListModels(ctx context.Context) ([]models.Model, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.installed, nil
}

func (f *fakeClient) Generate(ctx context.Context, model, prompt string) (*models.Generation, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	text, err := f.generate(model, prompt)
	if err != nil {
		return nil, &UpstreamError{Kind: ErrGeneration, Err: err}
	}
	return &models.Generation{Model: model, Text: text}, nil
}

func (f *fakeClient) PullModel(ctx context.Context, name string) error {
	f.pulled = append(f.pulled, name)
	return f.pullErr
}

func (f *fakeClient) DeleteModel(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.delErr
}

func echoClient() *fakeClient {
	return &fakeClient{generate: func(model, prompt string) (string, error) {
		return "re: " + prompt, nil
	}}
}

func TestSubmitHello(t *testing.T) {
	client := &fakeClient{generate: func(model, prompt string) (string, error) {
		return "hi there", nil
	}}
	svc := NewConversationService(client, NewMemoryStore(defaultTTL))

	got, err := svc.Submit(context.Background(), "s1", "llama3", "hello")
	require.NoError(t, err)

	want := models.Transcript{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi there"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}

	stored, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("stored transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitInterleavesTurns(t *testing.T) {
	svc := NewConversationService(echoClient(), NewMemoryStore(defaultTTL))
	ctx := context.Background()

	prompts := []string{"one", "two", "three"}
	var want models.Transcript
	for _, p := range prompts {
		_, err := svc.Submit(ctx, "s1", "llama3", p)
		require.NoError(t, err)
		want = append(want,
			models.ChatTurn{Role: models.RoleUser, Content: p},
			models.ChatTurn{Role: models.RoleAssistant, Content: "re: " + p},
		)
	}

	got, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitSendsOnlyLatestPrompt(t *testing.T) {
	client := echoClient()
	svc := NewConversationService(client, NewMemoryStore(defaultTTL))

	for _, p := range []string{"first", "second"} {
		_, err := svc.Submit(context.Background(), "s1", "llama3", p)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"first", "second"}, client.prompts)
}

func TestSubmitFailureLeavesTranscript(t *testing.T) {
	fail := false
	client := &fakeClient{generate: func(model, prompt string) (string, error) {
		if fail {
			return "", errors.New("model not found")
		}
		return "ok", nil
	}}
	svc := NewConversationService(client, NewMemoryStore(defaultTTL))
	ctx := context.Background()

	_, err := svc.Submit(ctx, "s1", "llama3", "before")
	require.NoError(t, err)
	before, err := svc.History(ctx, "s1")
	require.NoError(t, err)

	fail = true
	got, err := svc.Submit(ctx, "s1", "llama3", "after")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Nil(t, got)

	after, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("transcript changed after failed turn (-before +after):\n%s", diff)
	}
}

func TestSubmitEmptyPrompt(t *testing.T) {
	client := echoClient()
	svc := NewConversationService(client, NewMemoryStore(defaultTTL))

	for _, p := range []string{"", "   \n"} {
		_, err := svc.Submit(context.Background(), "s1", "llama3", p)
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Empty(t, client.prompts)
}

func TestSubmitSessionsAreIsolated(t *testing.T) {
	svc := NewConversationService(echoClient(), NewMemoryStore(defaultTTL))
	ctx := context.Background()

	_, err := svc.Submit(ctx, "a", "llama3", "for a")
	require.NoError(t, err)

	b, err := svc.History(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestSubmitConcurrentSameSession(t *testing.T) {
	svc := NewConversationService(echoClient(), NewMemoryStore(defaultTTL))
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Submit(ctx, "shared", "llama3", fmt.Sprintf("p%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.History(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, got, 2*n)

	seen := make(map[string]bool)
	for i := 0; i < len(got); i += 2 {
		user, reply := got[i], got[i+1]
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, models.RoleAssistant, reply.Role)
		assert.Equal(t, "re: "+user.Content, reply.Content)
		seen[user.Content] = true
	}
	assert.Len(t, seen, n)
	assert.Zero(t, svc.locks.len())
}
