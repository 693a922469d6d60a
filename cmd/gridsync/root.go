package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/config"
)

// cli holds state shared by every command.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	config.SetDefaults(c.v)

	rootCmd := &cobra.Command{
		Use:   "gridsync",
		Short: "Keep paged grids scrolled to the same position",
		Long: `gridsync keeps several grids, one per page of a horizontal pager,
at the same vertical scroll position. Whichever grid the user is
scrolling leads; the others follow, clamped to their own item count.

Commands:
  • demo      interactive terminal pager
  • serve     WebSocket hub for browser grids
  • simulate  scripted run that prints every follower scroll`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "Config file (default ./gridsync.yaml or ~/.config/gridsync)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		demoCmd(c),
		serveCmd(c),
		simulateCmd(c),
		versionCmd(),
	)
	return rootCmd
}

// load reads the configuration and installs the logger.
func (c *cli) load(logOut io.Writer) error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = cfg.Log.NewLogger(logOut)
	slog.SetDefault(c.logger)
	if f := cfg.File(); f != "" {
		c.logger.Debug("config loaded", "file", f)
	}
	return nil
}

func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func isTerminal(f *os.File) bool {
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}
