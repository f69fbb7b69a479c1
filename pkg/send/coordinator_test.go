package send

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outbox/pkg/bus"
	"github.com/dmitrymomot/outbox/pkg/config"
	"github.com/dmitrymomot/outbox/pkg/mail"
	"github.com/dmitrymomot/outbox/pkg/store"
)

// fakeProvider records every Send invocation and fails on demand.
type fakeProvider struct {
	mu    sync.Mutex
	calls []*mail.Message
	id    string
	err   error
}

func (f *fakeProvider) Send(_ context.Context, msg *mail.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// eventRecorder captures bus events. Publishes from a send worker happen
// before the ticket completes, so recorded events are stable after Wait.
type eventRecorder struct {
	mu     sync.Mutex
	events []bus.Event
}

func (r *eventRecorder) record(e bus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []bus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bus.Event(nil), r.events...)
}

func (r *eventRecorder) errorStatuses() []bus.StatusUpdate {
	var out []bus.StatusUpdate
	for _, e := range r.all() {
		if su, ok := e.(bus.StatusUpdate); ok && su.IsError {
			out = append(out, su)
		}
	}
	return out
}

type fixture struct {
	coord    *Coordinator
	cfg      *config.Store
	history  *store.History
	drafts   *store.Drafts
	provider *fakeProvider
	events   *eventRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Open(filepath.Join(dir, "config.yaml"))

	history, err := store.NewHistory(filepath.Join(dir, "history"), nil)
	require.NoError(t, err)
	drafts, err := store.NewDrafts(filepath.Join(dir, "drafts"), nil)
	require.NoError(t, err)
	templates, err := store.NewTemplates(filepath.Join(dir, "templates"), nil)
	require.NoError(t, err)

	provider := &fakeProvider{id: "msg_123"}
	eventBus := bus.New()
	events := &eventRecorder{}
	eventBus.Subscribe(bus.KindStatusUpdate, events.record)
	eventBus.Subscribe(bus.KindSendResult, events.record)

	coord := New(cfg, history, drafts, templates, eventBus,
		func(string) mail.Provider { return provider })

	return &fixture{
		coord:    coord,
		cfg:      cfg,
		history:  history,
		drafts:   drafts,
		provider: provider,
		events:   events,
	}
}

func validRequest() Request {
	return Request{
		FromName:    "Alice",
		FromAddress: "alice@example.com",
		Recipients:  "bob@example.com",
		Subject:     "Hi",
		HTML:        "<p>x</p>",
	}
}

func (f *fixture) configureKey(t *testing.T) {
	t.Helper()
	require.NoError(t, f.cfg.Set(config.KeyAPIKey, "re_test"))
}

func TestCoordinator_Send_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.configureKey(t)

	ticket, err := f.coord.Send(context.Background(), validRequest())
	require.NoError(t, err)

	msg, err := ticket.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, mail.StatusSent, msg.Status)
	require.Equal(t, "msg_123", msg.ID)
	require.False(t, msg.SentAt.IsZero())
	require.Empty(t, msg.Error)

	// exactly one network attempt
	require.Equal(t, 1, f.provider.callCount())

	// history record with matching subject and recipients is retrievable
	recs, err := f.history.LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Hi", recs[0].Subject)
	require.Equal(t, []string{"bob@example.com"}, recs[0].Recipients)
	require.Equal(t, mail.StatusSent, recs[0].Status)
}

func TestCoordinator_Send_EventOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.configureKey(t)

	ticket, err := f.coord.Send(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = ticket.Wait(context.Background())
	require.NoError(t, err)

	events := f.events.all()
	require.Len(t, events, 3)

	inflight, ok := events[0].(bus.StatusUpdate)
	require.True(t, ok)
	require.False(t, inflight.IsError)

	result, ok := events[1].(bus.SendResult)
	require.True(t, ok)
	require.True(t, result.Success)
	require.Equal(t, mail.StatusSent, result.Message.Status)

	terminal, ok := events[2].(bus.StatusUpdate)
	require.True(t, ok)
	require.False(t, terminal.IsError)
}

func TestCoordinator_Send_MissingAPIKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	// API key deliberately left empty

	ticket, err := f.coord.Send(context.Background(), Request{
		FromAddress: "alice@example.com",
		Recipients:  "a@b.com",
		Subject:     "Hi",
		HTML:        "<p>x</p>",
	})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.Nil(t, ticket)

	// no network call, no SENDING state, no history record
	require.Zero(t, f.provider.callCount())
	recs, err := f.history.LoadAll()
	require.NoError(t, err)
	require.Empty(t, recs)

	statuses := f.events.errorStatuses()
	require.Len(t, statuses, 1)
	require.Contains(t, statuses[0].Message, "missing API key")
}

func TestCoordinator_Send_ValidationFailures(t *testing.T) {
	t.Parallel()

	boilerplate := `<html dir="ltr"><head></head><body contenteditable="true"></body></html>`

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"invalid sender", func(r *Request) { r.FromAddress = "not-an-address" }, ErrInvalidSender},
		{"no recipients", func(r *Request) { r.Recipients = "" }, ErrNoRecipients},
		{"delimiters only", func(r *Request) { r.Recipients = " ; ; " }, ErrNoRecipients},
		{"empty subject", func(r *Request) { r.Subject = "  " }, ErrEmptySubject},
		{"empty body", func(r *Request) { r.HTML = "" }, ErrEmptyBody},
		{"editor boilerplate body", func(r *Request) { r.HTML = boilerplate }, ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.configureKey(t)

			req := validRequest()
			tt.mutate(&req)

			ticket, err := f.coord.Send(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, ticket)
			require.Zero(t, f.provider.callCount())
		})
	}
}

func TestCoordinator_Send_MultipleRecipientsInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.configureKey(t)

	req := validRequest()
	req.Recipients = "a@b.com;b@c.com"

	ticket, err := f.coord.Send(context.Background(), req)
	require.NoError(t, err)
	_, err = ticket.Wait(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, f.provider.callCount())
	require.Equal(t, []string{"a@b.com", "b@c.com"}, f.provider.calls[0].Recipients)
}

func TestCoordinator_Send_ProviderFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.configureKey(t)
	f.provider.err = errors.New("daily quota exceeded")

	ticket, err := f.coord.Send(context.Background(), validRequest())
	require.NoError(t, err)

	msg, err := ticket.Wait(context.Background())
	require.ErrorIs(t, err, ErrSendFailed)
	require.Equal(t, mail.StatusFailed, msg.Status)
	require.Equal(t, "daily quota exceeded", msg.Error)
	require.Empty(t, msg.ID)

	// failed attempts are recorded too: history is the audit trail
	recs, err := f.history.LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, mail.StatusFailed, recs[0].Status)
	require.Equal(t, "daily quota exceeded", recs[0].Error)

	// exactly one error status event
	statuses := f.events.errorStatuses()
	require.Len(t, statuses, 1)
	require.Contains(t, statuses[0].Message, "daily quota exceeded")

	var results []bus.SendResult
	for _, e := range f.events.all() {
		if res, ok := e.(bus.SendResult); ok {
			results = append(results, res)
		}
	}
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, "daily quota exceeded", results[0].Err)
}

// gatedProvider blocks Send until released, then fails iff the context it
// was handed has been cancelled.
type gatedProvider struct {
	proceed chan struct{}
}

func (g *gatedProvider) Send(ctx context.Context, _ *mail.Message) (string, error) {
	<-g.proceed
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "msg_gated", nil
}

func TestCoordinator_Send_CallerCancellationDoesNotAbortAttempt(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.configureKey(t)

	gated := &gatedProvider{proceed: make(chan struct{})}
	f.coord.provider = func(string) mail.Provider { return gated }

	ctx, cancel := context.WithCancel(context.Background())
	ticket, err := f.coord.Send(ctx, validRequest())
	require.NoError(t, err)

	// presenter navigates away while the attempt is in flight
	cancel()
	close(gated.proceed)

	msg, err := ticket.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, mail.StatusSent, msg.Status)
	require.Equal(t, "msg_gated", msg.ID)

	recs, err := f.history.LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, mail.StatusSent, recs[0].Status)
}

func TestCoordinator_SaveDraft(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	msg, err := f.coord.SaveDraft(Request{
		FromName:    "Alice",
		FromAddress: "alice@example.com",
		Recipients:  "bob@example.com",
		HTML:        "<p>wip</p>",
	})
	require.NoError(t, err)
	require.Equal(t, mail.StatusDraft, msg.Status)
	require.Equal(t, "(no subject)", msg.Subject)
	require.Zero(t, f.provider.callCount())

	drafts, err := f.drafts.LoadAll()
	require.NoError(t, err)
	require.Len(t, drafts, 1)
}

func TestCoordinator_SaveDraft_MissingSender(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.coord.SaveDraft(Request{Subject: "no sender"})
	require.ErrorIs(t, err, ErrMissingSender)

	drafts, err := f.drafts.LoadAll()
	require.NoError(t, err)
	require.Empty(t, drafts)
	require.Len(t, f.events.errorStatuses(), 1)
}

func TestCoordinator_SaveTemplate_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	err := f.coord.SaveTemplate(mail.NewTemplate("", "subject", "<p>body</p>"))
	require.ErrorIs(t, err, ErrEmptyTemplateName)

	err = f.coord.SaveTemplate(mail.NewTemplate("name", "subject", "   "))
	require.ErrorIs(t, err, ErrEmptyTemplateBody)
}

func TestCoordinator_SaveTemplate_RefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tpl := mail.NewTemplate("Welcome", "Hi", "<p>Hello</p>")
	created := tpl.CreatedAt
	require.NoError(t, f.coord.SaveTemplate(tpl))

	require.Equal(t, created, tpl.CreatedAt)
	require.False(t, tpl.UpdatedAt.Before(tpl.CreatedAt))
}
