package cli

import (
	"context"

	"github.com/dmitrijs2005/profilekeeper/internal/client/services"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

// getSimpleText, getTextWithDefault, getConfirm and getPassword are
// indirections used to facilitate testing. They point to interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getConfirm         = GetConfirm
	getPassword        = GetPassword
)

// Register prompts for the sign-up form and creates the account. It does
// not sign in.
func (a *App) Register(ctx context.Context) error {
	var in services.RegisterInput
	var err error

	if in.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	in.Password = string(password)

	if in.Phone, err = getSimpleText(a.reader, "Enter phone (optional)", a.out); err != nil {
		return err
	}
	if in.Address, err = getSimpleText(a.reader, "Enter address (optional)", a.out); err != nil {
		return err
	}

	if err := a.accounts.Register(ctx, in); err != nil {
		return a.report(ctx, err)
	}

	a.success("Registered! You can now log in.")
	return nil
}

// Login prompts for credentials and whether to stay logged in across runs.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getConfirm(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	acc, err := a.accounts.Login(ctx, email, string(password), remember)
	if err != nil {
		return a.report(ctx, err)
	}

	a.userEmail = acc.Email
	a.success("Welcome,", acc.Name)
	return nil
}

// Logout ends the session and forgets any remembered login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.userEmail = ""
	a.success("Logged out.")
	return nil
}

// WhoAmI prints the signed-in email.
func (a *App) WhoAmI(ctx context.Context) error {
	acc, err := a.accounts.Current(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	a.println(acc.Email)
	return nil
}
