// Package types holds the shared data structures used across the console.
// Keeping them in one place prevents import cycles: the view, the storage
// backends and the HTTP handlers all import types without depending on
// each other.
package types

import (
	"fmt"
	"strconv"
)

// Hospital is the record exchanged with the remote collection.
//
// Experience travels as a string ("2") and ID as a number, which is the
// shape the remote collection stores and returns.
type Hospital struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Branch     string `json:"branch"`
	Experience string `json:"experience"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Contact    string `json:"contact"`
}

// Branch and experience option lists offered by the form, in display order.
var (
	Branches    = []string{"HYD", "VJY", "VIZAG"}
	Experiences = []string{"1", "2", "3", "4"}
)

// Draft is the form copy of a Hospital. Every attribute is kept as the text
// the user typed, so a half-filled form is representable.
//
// Field order matters: validation reports the first blank field in the
// order the fields are declared here.
type Draft struct {
	ID         string `json:"id"         validate:"notblank,integer"`
	Name       string `json:"name"       validate:"notblank"`
	Branch     string `json:"branch"     validate:"notblank"`
	Experience string `json:"experience" validate:"notblank"`
	Email      string `json:"email"      validate:"notblank"`
	Password   string `json:"password"   validate:"notblank"`
	Contact    string `json:"contact"    validate:"notblank"`
}

// EmptyDraft returns the all-empty form template.
func EmptyDraft() Draft {
	return Draft{}
}

// DraftFrom copies a record into a form draft.
func DraftFrom(h Hospital) Draft {
	return Draft{
		ID:         strconv.Itoa(h.ID),
		Name:       h.Name,
		Branch:     h.Branch,
		Experience: h.Experience,
		Email:      h.Email,
		Password:   h.Password,
		Contact:    h.Contact,
	}
}

// Set returns a copy of d with the named attribute replaced. Names are the
// JSON attribute names ("id", "name", ...).
func (d Draft) Set(field, value string) (Draft, error) {
	switch field {
	case "id":
		d.ID = value
	case "name":
		d.Name = value
	case "branch":
		d.Branch = value
	case "experience":
		d.Experience = value
	case "email":
		d.Email = value
	case "password":
		d.Password = value
	case "contact":
		d.Contact = value
	default:
		return d, fmt.Errorf("unknown draft field: %q", field)
	}
	return d, nil
}

// Hospital converts the draft into a wire record. The draft is expected to
// have passed validation; a non-integer id is still reported as an error.
func (d Draft) Hospital() (Hospital, error) {
	id, err := strconv.Atoi(d.ID)
	if err != nil {
		return Hospital{}, fmt.Errorf("Draft.Hospital: parse id: %w", err)
	}

	return Hospital{
		ID:         id,
		Name:       d.Name,
		Branch:     d.Branch,
		Experience: d.Experience,
		Email:      d.Email,
		Password:   d.Password,
		Contact:    d.Contact,
	}, nil
}

// Column is one entry of the roster table schema.
type Column struct {
	Name  string
	Value func(Hospital) string
}

// Columns is the roster table schema, one column per attribute in Draft
// field order.
var Columns = []Column{
	{Name: "id", Value: func(h Hospital) string { return strconv.Itoa(h.ID) }},
	{Name: "name", Value: func(h Hospital) string { return h.Name }},
	{Name: "branch", Value: func(h Hospital) string { return h.Branch }},
	{Name: "experience", Value: func(h Hospital) string { return h.Experience }},
	{Name: "email", Value: func(h Hospital) string { return h.Email }},
	{Name: "password", Value: func(h Hospital) string { return h.Password }},
	{Name: "contact", Value: func(h Hospital) string { return h.Contact }},
}
