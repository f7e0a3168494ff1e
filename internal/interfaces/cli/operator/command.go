package operator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
	domainOperator "github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/bootstrap"
)

var (
	flags    bootstrap.Flags
	account  string
	name     string
	password string
	role     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage cashier and admin accounts",
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newCreateCommand())
	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		Long:  `Create an operator that can log in to the API. The password is prompted for when --password is omitted.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&account, "account", "", "Login account (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&role, "role", string(domainOperator.RoleStaff), "Role (admin, staff)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags, true)
	if err != nil {
		return err
	}
	defer database.Close()

	if password == "" {
		if password, err = readPassword(); err != nil {
			return err
		}
	}

	uc := operatorUsecases.NewCreateOperatorUseCase(
		repository.NewOperatorRepository(database.Get(), log),
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		log,
	)

	result, err := uc.Execute(context.Background(), operatorUsecases.CreateOperatorCommand{
		Account:  account,
		Name:     name,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	fmt.Printf("✅ Operator '%s' created (id=%d, role=%s)\n", result.Account, result.ID, result.Role)
	return nil
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
