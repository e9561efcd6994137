package models

// GeneralClientName is sent to the pricing service when no client is selected
const GeneralClientName = "General Client"

// Client is a customer of the laundry. Orders keep a copy of the name only.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// HasClientNamed reports whether a client with exactly this name exists
func HasClientNamed(clients []Client, name string) bool {
	for _, client := range clients {
		if client.Name == name {
			return true
		}
	}
	return false
}
