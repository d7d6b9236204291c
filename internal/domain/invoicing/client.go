package invoicing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Client is a billable customer
type Client struct {
	shared.OwnedEntity
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	TaxNumber string `json:"tax_number"`
	Address   string `json:"address"`
	Archived  bool   `json:"archived"`
}

// NewClient creates a new client
func NewClient(ownerID uuid.UUID, name, email, phone, company, taxNumber, address string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Client email is not valid")
	}

	return &Client{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Company:     company,
		TaxNumber:   taxNumber,
		Address:     address,
	}, nil
}

// Update changes the mutable client fields
func (c *Client) Update(name, email, phone, company, taxNumber, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Client email is not valid")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Company = company
	c.TaxNumber = taxNumber
	c.Address = address
	c.Touch()
	return nil
}

// Archive hides the client from active listings
func (c *Client) Archive() {
	c.Archived = true
	c.Touch()
}
