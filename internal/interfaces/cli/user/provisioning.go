package user

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
)

// Account is one entry of a provisioning file.
type Account struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// ProvisioningFile lists the console accounts to create or refresh:
//
//	users:
//	  - username: admin
//	    password: s3cret
//	    role: admin
type ProvisioningFile struct {
	Users []Account `yaml:"users"`
}

func LoadProvisioningFile(path string) (*ProvisioningFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provisioning file: %w", err)
	}

	var file ProvisioningFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse provisioning file %s: %w", path, err)
	}

	for i, u := range file.Users {
		if u.Username == "" || u.Password == "" || u.Role == "" {
			return nil, fmt.Errorf("provisioning file %s: entry %d needs username, password and role", path, i+1)
		}
	}
	return &file, nil
}

type userCreator interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*usecases.CreateUserResult, error)
}

// Provision creates every account, resetting the password and role of
// accounts that already exist. It stops at the first failure.
func Provision(ctx context.Context, create userCreator, file *ProvisioningFile) ([]usecases.CreateUserResult, error) {
	results := make([]usecases.CreateUserResult, 0, len(file.Users))
	for _, u := range file.Users {
		res, err := create.Execute(ctx, usecases.CreateUserCommand{
			Username:       u.Username,
			Password:       u.Password,
			Role:           u.Role,
			UpdateExisting: true,
		})
		if err != nil {
			return results, fmt.Errorf("failed to provision %s: %w", u.Username, err)
		}
		results = append(results, *res)
	}
	return results, nil
}
