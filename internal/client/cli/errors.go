package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/client/validation"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/filex"
)

// describe maps an error to the single line shown to the user.
func describe(err error) string {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		return "Please fix: " + strings.Join(verr.Messages(), "; ")
	case errors.Is(err, common.ErrAccountExists):
		return "An account with this email already exists."
	case errors.Is(err, common.ErrAuthenticationFailed):
		return "Invalid email or password."
	case errors.Is(err, common.ErrNotAuthenticated):
		return "You are not logged in."
	case errors.Is(err, common.ErrNotFound):
		return "Account not found."
	case errors.Is(err, common.ErrVersionConflict):
		return "Profile was changed elsewhere; reload it with 'profile' and try again."
	case errors.Is(err, filex.ErrTooLarge):
		return "Image is too large."
	case errors.Is(err, filex.ErrNotImage):
		return "File is not an image."
	default:
		return "Error: " + strings.TrimSpace(err.Error())
	}
}
