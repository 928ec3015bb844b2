package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render("welcome", Data{AppName: "Heart", Email: "a@b.co", SupportURL: "https://help.example"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Heart", subject)
	assert.Contains(t, text, "Hi a@b.co")
	assert.Contains(t, text, "https://help.example")
	assert.Contains(t, html, `href="https://help.example"`)
}

func TestRender_EscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, Data{Email: "<script>@b.co"})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "Contact support")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("reset_password", Data{})
	assert.Error(t, err)
}
