package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/profilekeeper/internal/client/services"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// App is the interactive client. It keeps no account state of its own
// beyond the email shown in the prompt; the session lives in the service.
type App struct {
	accounts  services.AccountService
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	userEmail string
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(accounts services.AccountService, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		accounts: accounts,
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores a remembered login, if any, and runs the REPL until exit.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to ProfileKeeper CLI (type 'help' for commands)")

	acc, err := a.accounts.Restore(ctx)
	switch {
	case err == nil:
		a.userEmail = acc.Email
		a.success("Welcome back,", acc.Name)
	case errors.Is(err, common.ErrNotAuthenticated):
	default:
		a.log.Warn(ctx, "restore session failed", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) success(args ...any) {
	_, _ = okColor.Fprintln(a.out, args...)
}

// report prints the user-facing message for err and returns err unchanged.
// A lost session also clears the prompt.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotAuthenticated) {
		a.userEmail = ""
	}
	a.log.Debug(ctx, "command failed", "error", err)
	_, _ = failColor.Fprintln(a.out, describe(err))
	return err
}
