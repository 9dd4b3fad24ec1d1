package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want DBCredentials
	}{
		{
			name: "full document",
			raw:  `{"host":"db.internal","user":"app","password":"s3cret","database":"shop","port":3307}`,
			want: DBCredentials{Host: "db.internal", User: "app", Password: "s3cret", Database: "shop", Port: 3307},
		},
		{
			name: "username and dbname aliases",
			raw:  `{"host":"db.internal","username":"app","password":"s3cret","dbname":"shop"}`,
			want: DBCredentials{Host: "db.internal", User: "app", Password: "s3cret", Database: "shop", Port: DefaultMySQLPort},
		},
		{
			name: "database defaults",
			raw:  `{"host":"db.internal","user":"app","password":"s3cret"}`,
			want: DBCredentials{Host: "db.internal", User: "app", Password: "s3cret", Database: DefaultDatabase, Port: DefaultMySQLPort},
		},
		{
			name: "port as string",
			raw:  `{"host":"db.internal","user":"app","password":"s3cret","port":"3311"}`,
			want: DBCredentials{Host: "db.internal", User: "app", Password: "s3cret", Database: DefaultDatabase, Port: 3311},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDocument([]byte(tc.raw), DefaultMySQLPort)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseDocument_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "no host", raw: `{"user":"app","password":"s3cret"}`},
		{name: "no user", raw: `{"host":"db","password":"s3cret"}`},
		{name: "no password", raw: `{"host":"db","user":"app"}`},
		{name: "not json", raw: `host=db`},
		{name: "bad port", raw: `{"host":"db","user":"app","password":"p","port":"abc"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.raw), DefaultMySQLPort)
			require.Error(t, err)
		})
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("TESTDB_HOST", "db.local")
	t.Setenv("TESTDB_USER", "app")
	t.Setenv("TESTDB_PASSWORD", "s3cret")
	t.Setenv("TESTDB_PORT", "5433")

	creds, err := NewEnvSource("TESTDB", DefaultPostgresPort).Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, DBCredentials{
		Host: "db.local", User: "app", Password: "s3cret",
		Database: DefaultDatabase, Port: 5433,
	}, creds)
}

func TestEnvSource_MissingRequired(t *testing.T) {
	t.Setenv("EMPTYDB_HOST", "db.local")

	_, err := NewEnvSource("EMPTYDB", DefaultPostgresPort).Resolve(context.Background())
	require.Error(t, err)
}

// countingSource считает обращения к нижележащему источнику.
type countingSource struct {
	calls int
	creds DBCredentials
	err   error
}

func (s *countingSource) Resolve(context.Context) (DBCredentials, error) {
	s.calls++
	return s.creds, s.err
}

func TestCached_ResolvesOnce(t *testing.T) {
	inner := &countingSource{creds: DBCredentials{Host: "db", User: "u", Password: "p"}}
	cached := NewCached(inner)

	for i := 0; i < 5; i++ {
		creds, err := cached.Resolve(context.Background())
		require.NoError(t, err)
		require.Equal(t, "db", creds.Host)
	}
	require.Equal(t, 1, inner.calls, "underlying source must be hit exactly once per process")
}

func TestCached_CachesFailure(t *testing.T) {
	inner := &countingSource{err: errors.New("secret store unavailable")}
	cached := NewCached(inner)

	_, err1 := cached.Resolve(context.Background())
	_, err2 := cached.Resolve(context.Background())
	require.Error(t, err1)
	require.Error(t, err2)
	require.Equal(t, 1, inner.calls)
}

// fakeSecretsManager подменяет AWS-клиент в тестах.
type fakeSecretsManager struct {
	payload string
	err     error
	gotID   string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotID = aws.ToString(params.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.payload)}, nil
}

func TestManagerSource_Resolve(t *testing.T) {
	fake := &fakeSecretsManager{payload: `{"host":"db","user":"app","password":"p"}`}
	source := NewManagerSourceWithClient(fake, "storefront/db", DefaultMySQLPort)

	creds, err := source.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "storefront/db", fake.gotID)
	require.Equal(t, "db", creds.Host)
	require.Equal(t, DefaultMySQLPort, creds.Port)
}

func TestManagerSource_Failure(t *testing.T) {
	fake := &fakeSecretsManager{err: errors.New("access denied")}
	source := NewManagerSourceWithClient(fake, "storefront/db", DefaultMySQLPort)

	_, err := source.Resolve(context.Background())
	require.Error(t, err)
}
