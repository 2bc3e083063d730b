// Command karame is the terminal client of the Si Karame assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/cmd/karame/ui"
	"github.com/sukarame/si-karame/backend/internal/app"
	"github.com/sukarame/si-karame/backend/internal/config"
	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "karame",
	Short: "Si Karame, asisten wisata Desa Wisata Sukarame",
	Long: `Si Karame answers questions about Desa Wisata Sukarame: tour packages,
homestays, culture, access and locations.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		conv, err := a.NewConversation(cmd.Context())
		if err != nil {
			return err
		}

		model := ui.NewChatModel(conv, a.Village)
		defer model.Close()

		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}

		reply := a.NewManager(cmd.Context()).Send(cmd.Context(), strings.Join(args, " "))

		out, err := glamour.Render(reply, "auto")
		if err != nil {
			out = reply + "\n"
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show village information",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		village, err := knowledge.Load(cfg.Knowledge.File)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderInfo(village, 80, ui.DefaultStyles()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.AddCommand(askCmd, infoCmd)
}

// loadApp builds the assistant from the environment. Logs are discarded
// unless --verbose is set since they would corrupt the terminal UI.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		log, err = logger.New(cfg.Log.Level, "console")
		if err != nil {
			return nil, err
		}
	}

	return app.New(ctx, cfg, log)
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
