// Package models defines the core data structures for accounts,
// directory resources, and dated memos.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Role identifies the privilege level of an account.
type Role string

const (
	// RoleStandard is the default role for newly registered accounts.
	RoleStandard Role = "standard"
	// RoleVolunteer marks accounts allowed to verify and delete resources.
	RoleVolunteer Role = "volunteer"
)

// Account represents a registered user with credentials.
type Account struct {
	// Username is the unique login name chosen by the user.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	// The raw password is never stored.
	PasswordHash string
	// Role is the privilege level assigned at registration.
	Role Role
}

// TriState is a capability flag with three values: yes, no, or
// not applicable. It marshals to JSON as true, false, or "N/A" so
// the client script receives the same shapes the stored documents
// always carried.
type TriState string

const (
	// Yes means the provider offers the capability.
	Yes TriState = "yes"
	// No means the provider does not offer the capability.
	No TriState = "no"
	// NotApplicable means the capability does not apply to the provider.
	NotApplicable TriState = "N/A"
)

// ParseTriState normalizes a submitted form token into a TriState.
// "yes" maps to Yes, "N/A" to NotApplicable, and anything else to No.
func ParseTriState(token string) TriState {
	switch token {
	case "yes":
		return Yes
	case "N/A":
		return NotApplicable
	default:
		return No
	}
}

// Satisfies reports whether the flag passes an active capability
// filter. Only Yes satisfies; NotApplicable never does.
func (t TriState) Satisfies() bool {
	return t == Yes
}

// MarshalJSON encodes Yes as true, No as false, and NotApplicable
// as the literal string "N/A".
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return json.Marshal(true)
	case NotApplicable:
		return json.Marshal(string(NotApplicable))
	default:
		return json.Marshal(false)
	}
}

// UnmarshalJSON accepts true/false booleans as well as the "N/A",
// "yes", and "no" string forms.
func (t *TriState) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*t = Yes
		} else {
			*t = No
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tri-state: %w", err)
	}
	*t = ParseTriState(s)
	return nil
}

// Value implements driver.Valuer so a TriState is stored as text.
func (t TriState) Value() (driver.Value, error) {
	if t == "" {
		return string(No), nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for text columns.
func (t *TriState) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*t = TriState(v)
	case []byte:
		*t = TriState(v)
	case nil:
		*t = No
	default:
		return fmt.Errorf("tri-state: cannot scan %T", src)
	}
	return nil
}

// Resource is a provider directory entry. Newly submitted resources
// are unverified and hidden from public listings until a volunteer
// verifies them.
type Resource struct {
	Category   string `json:"res_type"`
	Name       string `json:"res_name"`
	OfficeName string `json:"office_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Website    string `json:"website"`

	TakesOHP           TriState `json:"takes_OHP"`
	TakesPrivateIns    TriState `json:"takes_pvt_ins"`
	SlidingScale       TriState `json:"sliding_scale"`
	DiversityTrained   TriState `json:"diversity_trained"`
	InclusivePaperwork TriState `json:"inclusive_paperwork"`
	AsksPronoun        TriState `json:"asks_pronoun"`
	MonitorsHormones   TriState `json:"monitors_hormones"`

	Notes    string `json:"notes"`
	Verified bool   `json:"verified"`
}

// ResourceFilters selects which capability flags a public listing
// must satisfy. A false field imposes no constraint; a true field
// requires the corresponding flag to be exactly Yes.
type ResourceFilters struct {
	TakesOHP         bool
	MonitorsHormones bool
	TakesPrivateIns  bool
}

// Memo is a short dated note. Idx is the unique handle used to
// delete it.
type Memo struct {
	Idx  int       `json:"index"`
	Text string    `json:"text"`
	Date time.Time `json:"-"`

	// DispDate is the humanized form of Date ("Today", "2 days ago"),
	// filled in by the service for display.
	DispDate string `json:"disp_date"`
}

// MarshalJSON emits the date in the same YYYY-MM-DD form it was
// submitted in, alongside the display date.
func (m Memo) MarshalJSON() ([]byte, error) {
	type alias Memo
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(m), m.Date.Format("2006-01-02")})
}

// Session is the per-request authentication state loaded from the
// session cookie. It replaces the old process-wide login flag.
type Session struct {
	Token     string
	Username  string
	Role      Role
	ExpiresAt time.Time
}

// IsVolunteer reports whether the session belongs to a volunteer.
func (s *Session) IsVolunteer() bool {
	return s != nil && s.Role == RoleVolunteer
}

// Error kinds surfaced by services and repositories. Handlers map
// each of them to a JSON error message.
var (
	// ErrAlreadyExists is returned when a username is already taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrDuplicateResource is returned when a (category, name) pair is taken.
	ErrDuplicateResource = errors.New("resource already exists")
	// ErrUnknownUser is returned when a login names no account.
	ErrUnknownUser = errors.New("unknown user")
	// ErrBadPassword is returned when the password hash comparison fails.
	ErrBadPassword = errors.New("wrong password")
	// ErrNotFound is returned when a verify or delete target is missing.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
