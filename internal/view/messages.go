package view

import "fmt"

// Banner texts.
const (
	msgFetchFailed  = "Failed to fetch hospitals."
	msgAdded        = "Hospital added successfully."
	msgAddFailed    = "Error adding hospital."
	msgUpdated      = "Hospital updated successfully."
	msgUpdateFailed = "Error updating hospital."
	msgDeleteFailed = "Error deleting hospital."
	msgNotFound     = "Hospital not found."
	msgNumericID    = "Please enter a numeric id."
)

func fillOutMessage(field string) string {
	return fmt.Sprintf("Please fill out the %s field.", field)
}

func editingMessage(id int) string {
	return fmt.Sprintf("Editing hospital with ID %d", id)
}
