package user

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadProvisioningFile(t *testing.T) {
	path := writeFile(t, `
users:
  - username: admin
    password: s3cret
    role: admin
  - username: operator
    password: hunter22
    role: user
`)

	file, err := LoadProvisioningFile(path)
	require.NoError(t, err)
	require.Len(t, file.Users, 2)
	assert.Equal(t, Account{Username: "operator", Password: "hunter22", Role: "user"}, file.Users[1])
}

func TestLoadProvisioningFile_Invalid(t *testing.T) {
	_, err := LoadProvisioningFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadProvisioningFile(writeFile(t, "users: [\n"))
	assert.Error(t, err)

	_, err = LoadProvisioningFile(writeFile(t, "users:\n  - username: admin\n    role: admin\n"))
	assert.ErrorContains(t, err, "entry 1")
}

type fakeCreator struct {
	seen   []usecases.CreateUserCommand
	failOn string
}

func (f *fakeCreator) Execute(_ context.Context, cmd usecases.CreateUserCommand) (*usecases.CreateUserResult, error) {
	f.seen = append(f.seen, cmd)
	if cmd.Username == f.failOn {
		return nil, errors.New("boom")
	}
	return &usecases.CreateUserResult{Username: cmd.Username, Role: cmd.Role, Created: true}, nil
}

func TestProvision(t *testing.T) {
	file := &ProvisioningFile{Users: []Account{
		{Username: "admin", Password: "a", Role: "admin"},
		{Username: "broken", Password: "b", Role: "user"},
		{Username: "never", Password: "c", Role: "user"},
	}}
	creator := &fakeCreator{failOn: "broken"}

	results, err := Provision(context.Background(), creator, file)

	assert.ErrorContains(t, err, "broken")
	require.Len(t, results, 1)
	assert.Equal(t, "admin", results[0].Username)
	require.Len(t, creator.seen, 2)
	assert.True(t, creator.seen[0].UpdateExisting)
}
