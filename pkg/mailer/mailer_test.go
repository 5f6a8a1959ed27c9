package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplateUsesSprig(t *testing.T) {
	out, err := RenderTemplate("t", `{{ "  playa  " | trim | upper }}-{{ default "x" .Missing }}`, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "PLAYA-x", out)
}

func TestRenderTemplateParseError(t *testing.T) {
	_, err := RenderTemplate("t", `{{ .Name `, nil)
	assert.Error(t, err)
}

func TestSendWelcome(t *testing.T) {
	var got Message
	m := NewWithSender(SendFunc(func(_ context.Context, msg Message) error {
		got = msg
		return nil
	}), "Playea", "https://playea.eu")
	m.now = func() time.Time { return time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, m.SendWelcome(context.Background(), "ana@playea.eu", " ana garcía ", "AnaG"))

	assert.Equal(t, "ana@playea.eu", got.To)
	assert.Equal(t, "Welcome to Playea, Ana García!", got.Subject)
	assert.Contains(t, got.HTML, "@anag")
	assert.Contains(t, got.HTML, `href="https://playea.eu"`)
	assert.Contains(t, got.HTML, "Sent 2024-07-01")
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME("no-reply@playea.eu", Message{To: "a@b.c", Subject: "Hi", HTML: "<p>x</p>"}))
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.True(t, len(raw) > 0 && raw[len(raw)-8:] == "<p>x</p>")
}
