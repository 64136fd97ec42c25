// Package user holds the console account provisioning commands.
package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/auth"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/database"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/repository"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/cli/appenv"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

var (
	env        string
	configPath string

	seedFile string

	username string
	password string
	role     string
	update   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage console accounts",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newSeedCommand(), newAddCommand())
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin and user roles, then the accounts of a provisioning file",
		RunE:  runSeed,
	}
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML provisioning file with a users list")
	return cmd
}

func newAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create one console account",
		RunE:  runAdd,
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "admin", "Role: admin or user")
	cmd.Flags().BoolVar(&update, "update", false, "Reset password and role if the account exists")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

type provisioner struct {
	seed   *usecases.SeedRolesUseCase
	create *usecases.CreateUserUseCase
	log    logger.Interface
}

func newProvisioner(cfg *config.Config, log logger.Interface) *provisioner {
	gormDB := database.Get()
	tx := db.NewTransactionManager(gormDB)
	roles := repository.NewRoleRepository(gormDB)

	return &provisioner{
		seed: usecases.NewSeedRolesUseCase(tx, roles, log),
		create: usecases.NewCreateUserUseCase(
			tx,
			repository.NewUserRepository(gormDB, log),
			roles,
			auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
			log,
		),
		log: log,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	var file *ProvisioningFile
	if seedFile != "" {
		var err error
		if file, err = LoadProvisioningFile(seedFile); err != nil {
			return err
		}
	}

	cfg, log, err := appenv.Init(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	p := newProvisioner(cfg, log)
	ctx := context.Background()

	seeded, err := p.seed.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "roles created: %v\n", seeded.Created)

	if file == nil {
		return nil
	}

	results, err := Provision(ctx, p.create, file)
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) created=%t\n", r.Username, r.Role, r.Created)
	}
	return err
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, log, err := appenv.Init(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	p := newProvisioner(cfg, log)
	ctx := context.Background()

	if _, err := p.seed.Execute(ctx); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	res, err := p.create.Execute(ctx, usecases.CreateUserCommand{
		Username:       username,
		Password:       password,
		Role:           role,
		UpdateExisting: update,
	})
	if err != nil {
		return err
	}

	verb := "updated"
	if res.Created {
		verb = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "user %s %s with role %s\n", res.Username, verb, res.Role)
	return nil
}
