package formrelay

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/spf13/viper"

	"github.com/tb-digital/formrelay/db"
	"github.com/tb-digital/formrelay/domain"
	"github.com/tb-digital/formrelay/remote"
)

// WithConfigDir configures the relay to use the specified configuration directory.
// It creates the directory if it doesn't exist and initializes the configuration file
// using Viper.
//
// Parameters:
//   - appConfigDir: Path to the configuration directory
//
// Returns:
//   - func(*Relay) error: Configuration function that sets up the config directory
func WithConfigDir(appConfigDir string) func(*Relay) error {
	return func(relay *Relay) error {
		_, err := os.ReadDir(appConfigDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("[*] creating config dir")
				err := os.MkdirAll(appConfigDir, 0700)
				if err != nil {
					return fmt.Errorf("creating config dir %s: %w", appConfigDir, err)
				}
			} else {
				return fmt.Errorf("checking if directory exists %s: %w", appConfigDir, err)
			}
		}
		// At this point, the directory exists or was created successfully
		relay.ConfigDir = appConfigDir

		// VIPER
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appConfigDir)
		v.SetDefault("db_file", path.Join(appConfigDir, "formrelay.db"))
		v.SetDefault("listen_addr", "127.0.0.1")
		v.SetDefault("listen_port", "8085")
		v.SetDefault("cors_origins", []string{})
		v.SetDefault("remote.driver", "postgrest")
		err = v.ReadInConfig()
		if err != nil {
			// need to check if the error is config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				// Config file is not found
				err = v.SafeWriteConfig()
				if err != nil {
					return fmt.Errorf("writing config file : %w", err)
				}
			} else {
				return fmt.Errorf("reading config file : %w", err)
			}
		}
		if err := v.Unmarshal(&relay.Config); err != nil {
			return fmt.Errorf("unmarshalling config to struct : %w", err)
		}

		relay.Config.viper = v
		relay.Config.ConfigDir = appConfigDir
		// Rewrite entire file from struct
		err = v.WriteConfig()
		if err != nil {
			return fmt.Errorf("writing config after unmarshalling : %w", err)
		}
		return nil
	}
}

// WithDatabase opens (or creates) the SQLite store at the given path, applies pending
// migrations and attaches the repository to the relay. An empty path falls back to the
// configured db_file.
func WithDatabase(dbPath string) func(*Relay) error {
	return func(relay *Relay) error {
		if dbPath == "" {
			dbPath = relay.Config.DBFile
		}
		if dbPath == "" {
			return errors.New("no database path configured")
		}

		dbConn, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("opening store at %s : %w", dbPath, err)
		}

		relay.Repo = db.NewStoreRepo(dbConn)
		return nil
	}
}

// WithRepo attaches an already constructed repository. Used by tests to inject
// isolated in-memory stores.
func WithRepo(repo Repository) func(*Relay) error {
	return func(relay *Relay) error {
		relay.Repo = repo
		return nil
	}
}

// WithRemote attaches an already constructed remote backend client.
func WithRemote(store domain.RemoteStore) func(*Relay) error {
	return func(relay *Relay) error {
		relay.Remote = store
		return nil
	}
}

// WithRemoteFromConfig builds the remote backend client selected by the configuration:
// "postgrest" for the REST client, "postgres" for the direct pgx client.
func WithRemoteFromConfig() func(*Relay) error {
	return func(relay *Relay) error {
		switch relay.Config.Remote.Driver {
		case "postgrest":
			if relay.Config.Remote.URL == "" {
				return errors.New("remote.url is required for the postgrest driver")
			}
			relay.Remote = remote.NewClient(relay.Config.Remote.URL, relay.Config.Remote.APIKey)
			return nil
		case "postgres":
			if relay.Config.Remote.ConnString == "" {
				return errors.New("remote.conn_string is required for the postgres driver")
			}
			pg, err := remote.NewPG(relay.Config.Remote.ConnString)
			if err != nil {
				return fmt.Errorf("connecting to remote postgres : %w", err)
			}
			relay.Remote = pg
			return nil
		default:
			return fmt.Errorf("unknown remote driver %q", relay.Config.Remote.Driver)
		}
	}
}
