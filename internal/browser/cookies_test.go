package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookies(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCookies(t *testing.T) {
	path := writeCookies(t, `[
		{"name":"sid","value":"abc","domain":".bdjobs.com","path":"/","expires":1893456000,"httpOnly":true,"secure":true,"sameSite":"Lax"},
		{"name":"pref","value":"en","domain":"bdjobs.com","expires":-1,"sameSite":"no_restriction"},
		{"name":"","value":"dropped","domain":"bdjobs.com"}
	]`)

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	sid := cookies[0]
	assert.Equal(t, "sid", sid.Name)
	assert.Equal(t, ".bdjobs.com", *sid.Domain)
	assert.Equal(t, 1893456000.0, *sid.Expires)
	assert.True(t, *sid.HttpOnly)
	assert.True(t, *sid.Secure)
	assert.Equal(t, playwright.SameSiteAttributeLax, sid.SameSite)

	pref := cookies[1]
	assert.Equal(t, "/", *pref.Path)
	assert.Nil(t, pref.Expires)
	assert.Nil(t, pref.HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeNone, pref.SameSite)
}

func TestLoadCookies_Errors(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadCookies(writeCookies(t, `{not json`))
	assert.ErrorContains(t, err, "error parsing")
}
