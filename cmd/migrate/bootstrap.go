package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	companyapp "github.com/syncworks/backend/internal/application/company"
	identityapp "github.com/syncworks/backend/internal/application/identity"
	"github.com/syncworks/backend/internal/infrastructure/logger"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const bootstrapPasswordEnv = "SYNCWORKS_BOOTSTRAP_ADMIN_PASSWORD"

type bootstrapOptions struct {
	companyCode   string
	companyName   string
	timezone      string
	adminEmail    string
	adminName     string
	adminPassword string
}

func (o bootstrapOptions) validate() error {
	switch {
	case o.companyCode == "":
		return fmt.Errorf("--company-code is required")
	case o.companyName == "":
		return fmt.Errorf("--company-name is required")
	case o.adminEmail == "":
		return fmt.Errorf("--admin-email is required")
	case len(o.adminPassword) < 8:
		return fmt.Errorf("admin password must be at least 8 characters (set %s)", bootstrapPasswordEnv)
	}
	return nil
}

// bootstrapCmd onboards the first company and its admin user on an empty
// schema so the API can be logged into
func (c *cli) bootstrapCmd() *cobra.Command {
	var opts bootstrapOptions
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the first company and its admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.adminPassword == "" {
				opts.adminPassword = os.Getenv(bootstrapPasswordEnv)
			}
			if err := opts.validate(); err != nil {
				return err
			}
			return c.bootstrap(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.companyCode, "company-code", "", "company code used by the public quote form")
	cmd.Flags().StringVar(&opts.companyName, "company-name", "", "company display name")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA timezone (default UTC)")
	cmd.Flags().StringVar(&opts.adminEmail, "admin-email", "", "admin login email")
	cmd.Flags().StringVar(&opts.adminName, "admin-name", "Administrator", "admin display name")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", "", "admin password (prefer "+bootstrapPasswordEnv+")")
	return cmd
}

func (c *cli) bootstrap(ctx context.Context, opts bootstrapOptions) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(c.log, gormlogger.Warn))
	if err != nil {
		return err
	}
	defer db.Close()

	companies := companyapp.NewCompanyService(persistence.NewGormCompanyRepository(db.DB))
	co, err := companies.Create(ctx, companyapp.CreateCompanyRequest{
		Code:     opts.companyCode,
		Name:     opts.companyName,
		Timezone: opts.timezone,
	})
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	users := identityapp.NewUserService(
		persistence.NewGormUserRepository(db.DB),
		persistence.NewGormReferrerRepository(db.DB),
		nil, 0, nil, c.log,
	)
	admin, err := users.Create(ctx, identityapp.CreateUserInput{
		CompanyID:   co.ID,
		Email:       opts.adminEmail,
		Password:    opts.adminPassword,
		DisplayName: opts.adminName,
		Role:        "admin",
	})
	if err != nil {
		return fmt.Errorf("company %s created but admin user failed: %w", co.Code, err)
	}

	c.log.Info("bootstrap complete",
		zap.String("company_id", co.ID.String()),
		zap.String("company_code", co.Code),
		zap.String("admin_email", admin.Email),
	)
	return nil
}
