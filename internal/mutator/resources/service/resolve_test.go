package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

func TestResolveSourceVersion(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		versions []models.Version
		explicit int32
		expected int32
		err      string
	}{
		{
			uc:       "active version is preferred over newer versions",
			versions: []models.Version{{Number: 1}, {Number: 2, Active: true}, {Number: 3}},
			expected: 2,
		},
		{
			uc:       "highest version when none is active",
			versions: []models.Version{{Number: 3}, {Number: 1}, {Number: 2}},
			expected: 3,
		},
		{
			uc:       "explicit version wins over the active version",
			versions: []models.Version{{Number: 1}, {Number: 2, Active: true}},
			explicit: 1,
			expected: 1,
		},
		{
			uc:       "explicit version must exist",
			versions: []models.Version{{Number: 1, Active: true}},
			explicit: 5,
			err:      "failed to find version '5' remotely",
		},
		{
			uc:  "no versions",
			err: ErrNoVersions.Error(),
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			version, err := ResolveSourceVersion(tc.versions, tc.explicit)
			if tc.err != "" {
				require.Error(t, err)
				assert.Equal(t, tc.err, err.Error())
				assert.Zero(t, version)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, version)
		})
	}
}
