package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		buildInfo *debug.BuildInfo
		expected  string
	}{
		{
			name:     "development build from a checkout",
			version:  "development",
			commit:   "unknown",
			expected: "development",
		},
		{
			name:     "release with commit",
			version:  "1.0.0",
			commit:   "abc1234",
			expected: "1.0.0+abc1234",
		},
		{
			name:     "release without commit",
			version:  "2.0.0",
			commit:   "unknown",
			expected: "2.0.0",
		},
		{
			name:      "go install reports module version",
			version:   "development",
			commit:    "unknown",
			buildInfo: &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}},
			expected:  "v0.3.1",
		},
		{
			name:      "devel module version is ignored",
			version:   "development",
			commit:    "def5678",
			buildInfo: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			expected:  "development+def5678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit, origRead := Version, Commit, readBuildInfo
			defer func() {
				Version, Commit, readBuildInfo = origVersion, origCommit, origRead
			}()

			Version = tt.version
			Commit = tt.commit
			readBuildInfo = func() (*debug.BuildInfo, bool) {
				if tt.buildInfo == nil {
					return nil, false
				}
				return tt.buildInfo, true
			}

			assert.Equal(t, tt.expected, String())
		})
	}
}
