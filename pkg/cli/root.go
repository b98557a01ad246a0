package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	iotorm "github.com/TechXTT/iotorm"
	"github.com/TechXTT/iotorm/pkg/config"
	"github.com/TechXTT/iotorm/pkg/logging"
	"github.com/TechXTT/iotorm/pkg/request"
)

func version() string {
	return "v0.1.0"
}

// app carries the settings and the DB shared by all subcommands.
type app struct {
	envFile string
	flags   config.Config
	cfg     *config.Config
	db      *iotorm.DB
	// open builds the DB; tests replace it.
	open func(cfg *config.Config) (*iotorm.DB, error)
}

func defaultOpen(cfg *config.Config) (*iotorm.DB, error) {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return iotorm.Open(
		iotorm.WithLogger(logging.New(lvl, cfg.LogFormat, nil)),
		iotorm.WithDefaultSchema(cfg.Schema),
	), nil
}

// setup loads the configuration, applies flag overrides and opens the DB.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	override := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	override("uri", &cfg.URI, a.flags.URI)
	override("user", &cfg.User, a.flags.User)
	override("password", &cfg.Password, a.flags.Password)
	override("schema", &cfg.Schema, a.flags.Schema)
	override("log-level", &cfg.LogLevel, a.flags.LogLevel)
	override("log-format", &cfg.LogFormat, a.flags.LogFormat)
	a.cfg = cfg

	db, err := a.open(cfg)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// newConfig returns a request Config carrying the connection settings.
func (a *app) newConfig(method request.Method, table string) *request.Config {
	return &request.Config{
		URI:      a.cfg.URI,
		Account:  a.cfg.User,
		Password: a.cfg.Password,
		Method:   method,
		Schema:   a.cfg.Schema,
		Table:    table,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "iotorm",
		Short:         "iotorm runs statements against IoTDB and prints uniform JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env", ".env", "dotenv file with IOTORM_* settings")
	pf.StringVar(&a.flags.URI, "uri", "", "connection uri, e.g. iotdb://127.0.0.1:6667")
	pf.StringVar(&a.flags.User, "user", "", "account name")
	pf.StringVar(&a.flags.Password, "password", "", "account password")
	pf.StringVar(&a.flags.Schema, "schema", "", "default schema, e.g. root.db")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "text or json")

	root.AddCommand(newExecCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newSelectCmd(a))
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute runs the command line and drains every session before returning,
// including when ctx is cancelled by a signal.
func Execute(ctx context.Context, args []string) error {
	a := &app{open: defaultOpen}
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("iotorm: %w", err)
	}
	return nil
}
