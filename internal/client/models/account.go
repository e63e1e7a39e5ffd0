// Package models defines the client-side data models of ProfileKeeper.
package models

import (
	"bytes"
	"encoding/json"
)

// Account is one user's stored profile and credentials. The JSON layout is
// the persisted format of the "accounts" collection.
type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	// AvatarURL may hold a data: URI with the image inline.
	AvatarURL string `json:"avatarUrl"`

	// Revision counts successful mutations of the record. It is only
	// consulted in compare-and-swap mode and omitted while zero.
	Revision int64 `json:"revision,omitempty"`

	// Extra keeps members this type does not know, written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`

	// Opaque is the verbatim entry when the stored element is not a JSON
	// object. Such entries match no lookup and are written back as is.
	Opaque json.RawMessage `json:"-"`
}

// account has Account's fields without its JSON methods.
type account Account

// UnmarshalJSON reads one stored record. String fields also accept numbers
// and booleans (kept as their literal text), null (empty) and nested values
// (kept as compact JSON text), so a record with a foreign field type is
// still loaded instead of failing the whole collection.
func (a *Account) UnmarshalJSON(b []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return err
	}

	*a = Account{}
	for k, v := range members {
		switch k {
		case "email":
			a.Email = looseString(v)
		case "password":
			a.Password = looseString(v)
		case "name":
			a.Name = looseString(v)
		case "phone":
			a.Phone = looseString(v)
		case "address":
			a.Address = looseString(v)
		case "avatarUrl":
			a.AvatarURL = looseString(v)
		case "revision":
			if err := json.Unmarshal(v, &a.Revision); err != nil {
				a.keep(k, v)
			}
		default:
			a.keep(k, v)
		}
	}
	return nil
}

func (a *Account) keep(k string, v json.RawMessage) {
	if a.Extra == nil {
		a.Extra = map[string]json.RawMessage{}
	}
	a.Extra[k] = append(json.RawMessage(nil), v...)
}

// MarshalJSON writes the record back. Known fields win over Extra members
// of the same name.
func (a Account) MarshalJSON() ([]byte, error) {
	if a.Opaque != nil {
		return a.Opaque, nil
	}
	b, err := json.Marshal(account(a))
	if err != nil || len(a.Extra) == 0 {
		return b, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range a.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func looseString(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	switch {
	case len(v) == 0, string(v) == "null":
		return ""
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		return string(v)
	case v[0] == '{' || v[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err == nil {
			return buf.String()
		}
		return string(v)
	default:
		return string(v)
	}
}

// ProfilePatch lists the fields to replace on an account. A nil field is
// left unchanged. Password is applied only when non-nil and non-empty.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	Address   *string
	AvatarURL *string
	Password  *string

	// ExpectedRevision, when non-nil, makes the update conditional on the
	// stored revision (compare-and-swap mode only).
	ExpectedRevision *int64
}

// Apply copies the patch onto a. The password value is applied verbatim;
// encoding is the caller's job.
func (p ProfilePatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Address != nil {
		a.Address = *p.Address
	}
	if p.AvatarURL != nil {
		a.AvatarURL = *p.AvatarURL
	}
	if p.Password != nil && *p.Password != "" {
		a.Password = *p.Password
	}
}

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}
