package main

import (
	"fmt"
	"os"

	"github.com/corrigo/corrigo/internal/engine/config"
	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/database"
	"github.com/corrigo/corrigo/pkg/id"
	"github.com/corrigo/corrigo/pkg/version"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	configFile string
	username   string
	password   string
	role       string
)

var rootCmd = &cobra.Command{
	Use:   "corrigoctl",
	Short: "corrigoctl is the corrigo admin command line tool",
	Long:  "corrigoctl is the corrigo admin command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

// provisionCmd creates an account straight in the database. It exists
// to bootstrap the first super user, which cannot be provisioned over
// the API because provisioning itself requires a super token.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create an account directly in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountRole := model.Role(role)
		if !accountRole.Valid() || !accountRole.IsActive() {
			return fmt.Errorf("invalid role %q, want one of: free, paid, super", role)
		}

		appConf := config.NewConf(configFile)

		db, err := database.NewDatabase(appConf.Database)
		if err != nil {
			return err
		}
		redis, err := cache.NewRedis(appConf.Redis)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		account := &model.Account{
			AccountId: id.GetUUIDWithoutDashes(),
			Username:  username,
			Password:  string(hash),
			Role:      accountRole,
			Tokens:    startingTokens(accountRole),
		}

		accountRepo := repo.NewAccountRepo(database.NewGormDB(db), cache.NewRedisCache(redis))
		if err := accountRepo.Create(account); err != nil {
			return err
		}

		fmt.Printf("account %s created: accountId=%s role=%s tokens=%d\n",
			account.Username, account.AccountId, account.Role, account.Tokens)
		return nil
	},
}

func startingTokens(role model.Role) int64 {
	switch role {
	case model.RolePaid:
		return consts.PaidStartingTokens
	case model.RoleSuper:
		return consts.SuperStartingTokens
	default:
		return consts.FreeStartingTokens
	}
}

func init() {
	provisionCmd.Flags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path")
	provisionCmd.Flags().StringVar(&username, "username", "", "account username")
	provisionCmd.Flags().StringVar(&password, "password", "", "account password")
	provisionCmd.Flags().StringVar(&role, "role", string(model.RoleSuper), "account role: free, paid or super")
	_ = provisionCmd.MarkFlagRequired("username")
	_ = provisionCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
