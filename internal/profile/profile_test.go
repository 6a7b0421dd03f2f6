package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synfinatic/ssocreds/internal/awsconfig"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		section awsconfig.Section
		version Version
	}{
		{awsconfig.Section{"sso_session": "foo"}, VersionV2},
		{awsconfig.Section{"sso_session": "foo", "sso_start_url": "x", "sso_region": "us-east-1"}, VersionV2},
		{awsconfig.Section{"sso_start_url": "x", "sso_region": "us-east-1"}, VersionV1},
		{awsconfig.Section{"sso_start_url": "x"}, VersionUnknown},
		{awsconfig.Section{"sso_region": "us-east-1"}, VersionUnknown},
		{awsconfig.Section{"sso_session": ""}, VersionUnknown},
		{awsconfig.Section{}, VersionUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.version, Classify(tc.section), tc.section)
	}
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	e, err := NewEntry(awsconfig.Section{"sso_session": "foo", "region": "us-east-1"})
	require.NoError(t, err)
	assert.Equal(t, VersionV2, e.Version())
	v2, ok := e.(*ProfileV2)
	require.True(t, ok)
	assert.Equal(t, "foo", v2.SsoSession)

	e, err = NewEntry(awsconfig.Section{"sso_start_url": "x", "sso_region": "us-east-1"})
	require.NoError(t, err)
	assert.Equal(t, VersionV1, e.Version())

	_, err = NewEntry(awsconfig.Section{"region": "us-east-1"})
	assert.Error(t, err)
}

func TestSessionProfile(t *testing.T) {
	t.Parallel()

	s := NewSessionProfile(awsconfig.Section{
		"sso_start_url":           "https://example.awsapps.com/start",
		"sso_region":              "us-east-1",
		"sso_registration_scopes": "sso:account:access",
	})
	assert.True(t, s.IsValid())

	s.RegistrationScopes = ""
	assert.False(t, s.IsValid())
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v1", VersionV1.String())
	assert.Equal(t, "v2", VersionV2.String())
	assert.Equal(t, "unknown", VersionUnknown.String())
}

func TestProfileNames(t *testing.T) {
	t.Parallel()

	c := awsconfig.Config{
		"default":         {},
		"profile foo":     {},
		"profile bar":     {},
		"sso-session baz": {},
	}
	assert.Equal(t, []string{"default", "bar", "foo"}, ProfileNames(c))
}

func TestValidValues(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidRegion("us-east-1"))
	assert.False(t, IsValidRegion("us-east-99"))
	assert.True(t, IsValidOutput("yaml"))
	assert.False(t, IsValidOutput("xml"))
}
