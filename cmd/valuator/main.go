// Command valuator edits valuations stored on a valuator server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/valuator/internal/auth"
	"github.com/mmynk/valuator/internal/config"
	"github.com/mmynk/valuator/internal/storage/remote"
	"github.com/mmynk/valuator/internal/templates"
	"github.com/mmynk/valuator/internal/valuations"
	"github.com/mmynk/valuator/pkg/logging"
)

// app carries what every subcommand needs once flags and env are resolved.
type app struct {
	cfg        config.Client
	httpClient *http.Client
	templates  *templates.Set
	logger     *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{httpClient: http.DefaultClient}
	var serverURL, token string

	root := &cobra.Command{
		Use:           "valuator",
		Short:         "Edit real-estate valuations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotenv(); err != nil {
				return err
			}
			cfg, err := config.Parse[config.Client]()
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if token != "" {
				cfg.Token = token
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel), "text")

			a.templates, err = templates.LoadFile(cfg.TemplatesPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "url", "", "server URL (default $VALUATOR_URL)")
	root.PersistentFlags().StringVar(&token, "token", "", "session token (default $VALUATOR_TOKEN)")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newNewCmd(a),
		newImportCmd(a),
		newSetCmd(a),
		newCompCmd(a),
		newExpenseCmd(a),
	)
	return root
}

// session returns the signed-in session from the configured token.
func (a *app) session() (*auth.Session, error) {
	if a.cfg.Token == "" {
		return nil, fmt.Errorf("not signed in: run `valuator login` and set VALUATOR_TOKEN")
	}
	return auth.SessionFromToken(a.cfg.Token)
}

// workspace builds a valuation store synced with every valuation the user owns.
func (a *app) workspace(ctx context.Context) (*valuations.Store, error) {
	session, err := a.session()
	if err != nil {
		return nil, err
	}
	docs := remote.New(a.httpClient, a.cfg.ServerURL, session)
	store := valuations.New(docs, session, a.templates, a.logger)
	if err := store.FetchAll(ctx, session.CurrentUserID()); err != nil {
		return nil, err
	}
	return store, nil
}

// edit loads valuation id into the draft, applies fn and saves the result.
func (a *app) edit(cmd *cobra.Command, id string, fn func(*valuations.Store) error) error {
	ctx := cmd.Context()
	store, err := a.workspace(ctx)
	if err != nil {
		return err
	}
	v, ok := store.Valuation(id)
	if !ok {
		return fmt.Errorf("valuation %s not found", id)
	}
	store.SetWip(id, v)
	if err := fn(store); err != nil {
		return err
	}
	return save(ctx, cmd.OutOrStdout(), store)
}

// save persists the draft and reports the outcome.
func save(ctx context.Context, w io.Writer, store *valuations.Store) error {
	result := store.Persist(ctx)
	if result == valuations.PersistFailed {
		return fmt.Errorf("save failed; see log for details")
	}
	fmt.Fprintf(w, "%s %s\n", result, store.SelectedID())
	return nil
}
