package model

import (
	"errors"
	"time"
)

// ErrInvalidUserType is returned when a user type discriminator is not one of
// the known kinds.
var ErrInvalidUserType = errors.New("invalid user type")

// UserKind tags which table a directory user comes from.  The directory
// merges two separate tables into a single wire shape, so every record
// carries its kind alongside its id.
type UserKind string

const (
	KindCustomer UserKind = "customer"
	KindStaff    UserKind = "staff"
)

// Kinds lists the user kinds in the order they appear in listings.
var Kinds = []UserKind{KindCustomer, KindStaff}

// ParseUserKind accepts exactly "customer" or "staff".  Matching is case
// sensitive; "Customer" is rejected.
func ParseUserKind(s string) (UserKind, error) {
	switch UserKind(s) {
	case KindCustomer, KindStaff:
		return UserKind(s), nil
	}
	return "", ErrInvalidUserType
}

// Table returns the table backing the kind.
func (k UserKind) Table() string {
	if k == KindStaff {
		return "staff"
	}
	return "customer"
}

// IDColumn returns the primary key column of the kind's table.
func (k UserKind) IDColumn() string {
	if k == KindStaff {
		return "staff_id"
	}
	return "customer_id"
}

func (k UserKind) String() string { return string(k) }

// DirectoryUser is the unified shape of a customer or staff row.  The
// table-specific primary key (customer_id / staff_id) becomes ID and Type
// records which table it came from.
//
// Fields:
//  ID         – customer.customer_id or staff.staff_id
//  Type       – kind discriminator
//  FirstName  – first_name
//  LastName   – last_name
//  Active     – active flag
//  LastUpdate – last_update
type DirectoryUser struct {
	ID         uint64    `json:"id"`
	Type       UserKind  `json:"type"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Active     bool      `json:"active"`
	LastUpdate time.Time `json:"last_update"`
}

// Project builds a DirectoryUser from the shared columns of either table.
func Project(kind UserKind, id uint64, first, last string, active bool, updated time.Time) DirectoryUser {
	return DirectoryUser{
		ID:         id,
		Type:       kind,
		FirstName:  first,
		LastName:   last,
		Active:     active,
		LastUpdate: updated,
	}
}

// UserListing is the response body of the user listing endpoint.  Both slices
// are always non-nil so they encode as [] rather than null.
type UserListing struct {
	ActiveUsers   []DirectoryUser `json:"active_users"`
	InactiveUsers []DirectoryUser `json:"inactive_users"`
}

// StatusUpdate is a request to flip the active flag of one user.
type StatusUpdate struct {
	ID     uint64
	Kind   UserKind
	Active bool
}
