package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/shopspring/decimal"
)

// ItemCommand describes a new catalog item as typed by staff
type ItemCommand struct {
	Name  string
	Price string
}

// Validate checks the name and parses the price
func (c ItemCommand) Validate() (string, decimal.Decimal, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", decimal.Zero, newValidationError("name", "item name is required")
	}

	raw := strings.TrimSpace(c.Price)
	if raw == "" {
		return "", decimal.Zero, newValidationError("price", "item price is required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return "", decimal.Zero, newValidationError("price", "item price must be a number")
	}
	if price.IsNegative() {
		return "", decimal.Zero, newValidationError("price", "item price must not be negative")
	}
	return name, price, nil
}

// EditItemCommand renames and reprices an existing item
type EditItemCommand struct {
	ID string
	ItemCommand
}

// ClientCommand describes a client as typed by staff
type ClientCommand struct {
	Name  string
	Phone string
	Email string
}

// Validate checks the client name and normalises the fields
func (c ClientCommand) Validate() (models.Client, error) {
	client := models.Client{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
	if client.Name == "" {
		return models.Client{}, newValidationError("name", "client name is required")
	}
	return client, nil
}

// EditClientCommand replaces the details of an existing client
type EditClientCommand struct {
	ID string
	ClientCommand
}

// Items returns a copy of the catalog
func (a *App) Items() []models.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Item(nil), a.state.Items...)
}

// Item looks up one catalog item
func (a *App) Item(id string) (models.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	item, ok := models.FindItem(a.state.Items, id)
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	return item, nil
}

// AddItem appends a new item with a zero quantity entry
func (a *App) AddItem(cmd ItemCommand) (models.Item, error) {
	name, price, err := cmd.Validate()
	if err != nil {
		return models.Item{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	item := models.Item{ID: "item_" + uuid.NewString(), Name: name, Price: price}
	err = a.mutateLocked(func(s *State) error {
		s.Items = append(s.Items, item)
		s.Quantities[item.ID] = 0
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	a.logger.Info().Str("item_id", item.ID).Str("name", name).Msg("Item added")
	return item, nil
}

// EditItem renames and reprices an item in place. Past orders are not touched.
func (a *App) EditItem(cmd EditItemCommand) (models.Item, error) {
	name, price, err := cmd.Validate()
	if err != nil {
		return models.Item{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var updated models.Item
	err = a.mutateLocked(func(s *State) error {
		for i := range s.Items {
			if s.Items[i].ID == cmd.ID {
				s.Items[i].Name = name
				s.Items[i].Price = price
				updated = s.Items[i]
				return nil
			}
		}
		return ErrItemNotFound
	})
	if err != nil {
		return models.Item{}, err
	}
	a.logger.Info().Str("item_id", cmd.ID).Msg("Item updated")
	return updated, nil
}

// DeleteItem removes the item and its quantity entry
func (a *App) DeleteItem(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.mutateLocked(func(s *State) error {
		for i, item := range s.Items {
			if item.ID == id {
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
				delete(s.Quantities, id)
				return nil
			}
		}
		return ErrItemNotFound
	})
	if err != nil {
		return err
	}
	a.logger.Info().Str("item_id", id).Msg("Item deleted")
	return nil
}

// Clients returns a copy of the client list
func (a *App) Clients() []models.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Client(nil), a.state.Clients...)
}

// AddClient appends a client with a fresh id
func (a *App) AddClient(cmd ClientCommand) (models.Client, error) {
	client, err := cmd.Validate()
	if err != nil {
		return models.Client{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	client.ID = "cl_" + uuid.NewString()
	err = a.mutateLocked(func(s *State) error {
		s.Clients = append(s.Clients, client)
		return nil
	})
	if err != nil {
		return models.Client{}, err
	}
	a.logger.Info().Str("client_id", client.ID).Msg("Client added")
	return client, nil
}

// EditClient replaces a client's details. Orders keep the old name.
func (a *App) EditClient(cmd EditClientCommand) (models.Client, error) {
	client, err := cmd.Validate()
	if err != nil {
		return models.Client{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	client.ID = cmd.ID
	err = a.mutateLocked(func(s *State) error {
		for i := range s.Clients {
			if s.Clients[i].ID == cmd.ID {
				s.Clients[i] = client
				return nil
			}
		}
		return ErrClientNotFound
	})
	if err != nil {
		return models.Client{}, err
	}
	a.logger.Info().Str("client_id", cmd.ID).Msg("Client updated")
	return client, nil
}

// DeleteClient removes a client. A selection naming the client is left as is.
func (a *App) DeleteClient(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.mutateLocked(func(s *State) error {
		for i, client := range s.Clients {
			if client.ID == id {
				s.Clients = append(s.Clients[:i], s.Clients[i+1:]...)
				return nil
			}
		}
		return ErrClientNotFound
	})
	if err != nil {
		return err
	}
	a.logger.Info().Str("client_id", id).Msg("Client deleted")
	return nil
}

// SelectClient sets the client for the order being built; "" means the general client
func (a *App) SelectClient(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.mutateLocked(func(s *State) error {
		s.SelectedClient = strings.TrimSpace(name)
		return nil
	})
}

// SelectedClient returns the selected name and whether it is still in the client list
func (a *App) SelectedClient() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedClientLocked()
}

func (a *App) selectedClientLocked() (string, bool) {
	name := a.state.SelectedClient
	return name, name != "" && models.HasClientNamed(a.state.Clients, name)
}
