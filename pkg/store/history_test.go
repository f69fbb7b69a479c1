package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

func TestHistory_AddAssignsRecordID(t *testing.T) {
	t.Parallel()

	h, err := NewHistory(t.TempDir(), nil)
	require.NoError(t, err)

	msg := &mail.Message{Subject: "hi", Status: mail.StatusSent, SentAt: time.Now()}
	require.NoError(t, h.Add(msg))
	require.NotEmpty(t, msg.RecordID)
}

func TestHistory_LoadAllSortsMostRecentFirst(t *testing.T) {
	t.Parallel()

	h, err := NewHistory(t.TempDir(), nil)
	require.NoError(t, err)

	base := time.Now()
	require.NoError(t, h.Add(&mail.Message{Subject: "oldest", Status: mail.StatusSent, SentAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, h.Add(&mail.Message{Subject: "newest", Status: mail.StatusFailed, SentAt: base}))
	require.NoError(t, h.Add(&mail.Message{Subject: "middle", Status: mail.StatusSent, SentAt: base.Add(-1 * time.Hour)}))

	msgs, err := h.LoadAll()
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "newest", msgs[0].Subject)
	require.Equal(t, "middle", msgs[1].Subject)
	require.Equal(t, "oldest", msgs[2].Subject)
}

func TestHistory_ClearTwiceLeavesEmpty(t *testing.T) {
	t.Parallel()

	h, err := NewHistory(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, h.Add(&mail.Message{Subject: "hi", Status: mail.StatusSent, SentAt: time.Now()}))

	require.NoError(t, h.Clear())
	msgs, err := h.LoadAll()
	require.NoError(t, err)
	require.Empty(t, msgs)

	require.NoError(t, h.Clear())
	msgs, err = h.LoadAll()
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestTemplates_RoundTrip(t *testing.T) {
	t.Parallel()

	ts, err := NewTemplates(t.TempDir(), nil)
	require.NoError(t, err)

	tpl := mail.NewTemplate("Welcome", "Hello {{.Name}}", "<p>Hi {{.Name}}</p>")
	require.NoError(t, ts.Save(tpl))
	require.NotEmpty(t, tpl.ID)

	loaded, err := ts.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, tpl.Name, loaded[0].Name)
	require.Equal(t, tpl.Subject, loaded[0].Subject)
	require.Equal(t, tpl.HTML, loaded[0].HTML)
}

func TestTemplates_SaveSameIDUpdates(t *testing.T) {
	t.Parallel()

	ts, err := NewTemplates(t.TempDir(), nil)
	require.NoError(t, err)

	tpl := mail.NewTemplate("Welcome", "Hello", "<p>Hi</p>")
	require.NoError(t, ts.Save(tpl))

	tpl.Subject = "Hello again"
	require.NoError(t, ts.Save(tpl))

	loaded, err := ts.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "Hello again", loaded[0].Subject)
}

func TestTemplates_Get(t *testing.T) {
	t.Parallel()

	ts, err := NewTemplates(t.TempDir(), nil)
	require.NoError(t, err)

	tpl := mail.NewTemplate("Welcome", "Hello", "<p>Hi</p>")
	require.NoError(t, ts.Save(tpl))

	found, err := ts.Get(tpl.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Welcome", found.Name)

	missing, err := ts.Get("unknown")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDrafts_SaveAndDelete(t *testing.T) {
	t.Parallel()

	d, err := NewDrafts(t.TempDir(), nil)
	require.NoError(t, err)

	msg := &mail.Message{Subject: "draft", Status: mail.StatusDraft, SentAt: time.Now()}
	require.NoError(t, d.Save(msg))
	require.NotEmpty(t, msg.RecordID)

	drafts, err := d.LoadAll()
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	require.NoError(t, d.Delete(msg.RecordID))
	drafts, err = d.LoadAll()
	require.NoError(t, err)
	require.Empty(t, drafts)
}
