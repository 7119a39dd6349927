package update

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReleaseServer points the release lookup at a server answering with
// the given tag for the duration of the test.
func stubReleaseServer(t *testing.T, tag string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": %q}`, tag)
	}))
	orig := releaseURL
	releaseURL = srv.URL
	t.Cleanup(func() {
		releaseURL = orig
		srv.Close()
	})
}

func TestLastCheckRoundtrip(t *testing.T) {
	dir := t.TempDir()

	_, ok := lastCheck(dir)
	assert.False(t, ok, "no timestamp recorded yet")

	setLastCheck(dir)

	last, ok := lastCheck(dir)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), last, time.Minute)
}

func TestCheck_InvalidVersion(t *testing.T) {
	err := Check("not-a-version")
	assert.Error(t, err)
}

func TestCheck_MalformedServerTagIsNonFatal(t *testing.T) {
	stubReleaseServer(t, "not-a-version")
	assert.NoError(t, Check("1.0.0"))
}

func TestCheck_UpToDate(t *testing.T) {
	stubReleaseServer(t, "v1.0.0")
	assert.NoError(t, Check("1.0.0"))
}
