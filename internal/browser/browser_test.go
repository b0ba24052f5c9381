// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records launched commands.
type mockExecutor struct {
	availableBins map[string]bool
	runErr        error
	ran           []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args ...string) error {
	m.ran = append(m.ran, name+" "+strings.Join(args, " "))
	return m.runErr
}

func testOpener(exec *mockExecutor) *Opener {
	o := NewOpener("https://inspirehep.net/literature/", zerolog.Nop())
	o.goos = "linux"
	o.exec = exec
	return o
}

func TestValidateArxivURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr string
	}{
		{"https://arxiv.org/abs/2104.08394", ""},
		{"http://arxiv.org/pdf/2104.08394", ""},
		{"https://www.arxiv.org/abs/hep-th/9802150", ""},
		{"https://evil.com/arxiv", "got: evil.com"},
		{"https://arxiv.org.evil.com/abs/1", "got: arxiv.org.evil.com"},
		{"https://export.arxiv.org/abs/1", "got: export.arxiv.org"},
		{"https://arxiv.org:8443/abs/1", "got: arxiv.org:8443"},
		{"https://user@arxiv.org/abs/1", "got: user@arxiv.org"},
		{"ftp://arxiv.org/abs/1", "must start with http:// or https://"},
		{"arxiv.org/abs/1", "must start with http:// or https://"},
		{"", "must start with http:// or https://"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateArxivURL(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRecordID(t *testing.T) {
	tests := []struct {
		in     string
		wantID string
		ok     bool
	}{
		{"451647", "451647", true},
		{`"451647"`, "451647", true},
		{`'451647'`, "451647", true},
		{"", "", false},
		{`""`, "", false},
		{"12a", "12a", false},
		{"-12", "-12", false},
		{"1 2", "1 2", false},
		{"١٢٣", "١٢٣", false},
		{"12/../admin", "12/../admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, err := ValidateRecordID(tt.in)
			assert.Equal(t, tt.wantID, id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOpenArxiv(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"xdg-open": true}}
	o := testOpener(exec)

	res := o.OpenArxiv("https://arxiv.org/abs/2104.08394")
	assert.True(t, res.Success)
	assert.False(t, res.Error)
	assert.Contains(t, res.Message, "Successfully opened arXiv URL https://arxiv.org/abs/2104.08394")
	assert.Equal(t, []string{"xdg-open https://arxiv.org/abs/2104.08394"}, exec.ran)
}

func TestOpenArxiv_RejectedURLNeverLaunches(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"xdg-open": true}}
	o := testOpener(exec)

	res := o.OpenArxiv("https://evil.com/arxiv")
	assert.True(t, res.Error)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "only arXiv URLs")
	assert.Empty(t, exec.ran)
}

func TestOpenArxiv_NoHandler(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{}}
	res := testOpener(exec).OpenArxiv("https://arxiv.org/abs/1")
	assert.True(t, res.Error)
	assert.Contains(t, res.Message, "Failed to open arXiv URL")
}

func TestOpenRecord(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"xdg-open": true}}
	o := testOpener(exec)

	res := o.OpenRecord(`"451647"`)
	assert.True(t, res.Success)
	assert.Equal(t, "https://inspirehep.net/literature/451647", res.URL)
	assert.Equal(t, []string{"xdg-open https://inspirehep.net/literature/451647"}, exec.ran)
}

func TestOpenRecord_InvalidID(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"xdg-open": true}}
	res := testOpener(exec).OpenRecord("abc")
	assert.True(t, res.Error)
	assert.Contains(t, res.Message, "must be a number")
	assert.Empty(t, exec.ran)
}

func TestOpenRecord_LaunchFails(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"xdg-open": true}, runErr: errors.New("exit status 3")}
	res := testOpener(exec).OpenRecord("1")
	assert.True(t, res.Error)
	assert.Contains(t, res.Message, "exit status 3")
}

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"linux", "xdg-open", []string{"u"}},
		{"freebsd", "xdg-open", []string{"u"}},
		{"darwin", "open", []string{"u"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := launchCommand(tt.goos, "u")
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
