package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/profilekeeper/internal/client/models"
	"github.com/dmitrijs2005/profilekeeper/internal/client/services"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/filex"
)

// readAvatar is a test seam for loading avatar images from disk.
var readAvatar = func(path string) (string, error) {
	return filex.ReadDataURI(path, filex.MaxAvatarBytes)
}

// Profile prints the signed-in profile.
func (a *App) Profile(ctx context.Context) error {
	acc, err := a.accounts.Current(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printProfile(a, acc)
	return nil
}

func printProfile(a *App, acc *models.Account) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", acc.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", acc.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", orDash(acc.Phone))
	fmt.Fprintf(tw, "Address:\t%s\n", orDash(acc.Address))
	fmt.Fprintf(tw, "Avatar:\t%s\n", avatarSummary(acc.AvatarURL))
	if acc.Revision > 0 {
		fmt.Fprintf(tw, "Revision:\t%d\n", acc.Revision)
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// avatarSummary describes a data URI by media type and size instead of
// dumping it.
func avatarSummary(url string) string {
	if url == "" {
		return "-"
	}
	if rest, ok := strings.CutPrefix(url, "data:"); ok {
		mime, data, _ := strings.Cut(rest, ";base64,")
		return fmt.Sprintf("%s image, ~%d bytes", mime, len(data)*3/4)
	}
	return url
}

// Edit walks through the profile form. Enter keeps a value, "-" clears an
// optional one, and a blank password keeps the current password.
func (a *App) Edit(ctx context.Context) error {
	acc, err := a.accounts.Current(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	in := services.ProfileInput{ExpectedRevision: &acc.Revision}
	if in.Name, err = getTextWithDefault(a.reader, "Name", acc.Name, a.out); err != nil {
		return err
	}
	if in.Phone, err = getTextWithDefault(a.reader, "Phone", acc.Phone, a.out); err != nil {
		return err
	}
	if in.Address, err = getTextWithDefault(a.reader, "Address", acc.Address, a.out); err != nil {
		return err
	}
	password, err := getPassword("New password (blank keeps current)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	in.Password = string(password)

	if err := a.accounts.SaveProfile(ctx, in); err != nil {
		return a.report(ctx, err)
	}
	a.success("Profile saved.")
	return nil
}

// Avatar sets the avatar from an image file, or removes it when arg is "-".
func (a *App) Avatar(ctx context.Context, arg string) error {
	if _, err := a.accounts.Current(ctx); err != nil {
		return a.report(ctx, err)
	}

	url := ""
	if arg != "-" {
		var err error
		if url, err = readAvatar(arg); err != nil {
			return a.report(ctx, err)
		}
	}

	if err := a.accounts.SetAvatar(ctx, url); err != nil {
		return a.report(ctx, err)
	}
	if url == "" {
		a.success("Avatar removed.")
	} else {
		a.success("Avatar updated.")
	}
	return nil
}
