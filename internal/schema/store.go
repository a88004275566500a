package schema

// CreateStoreInput creates a store together with its first approval request.
type CreateStoreInput struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Description    string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Address        string `json:"address" validate:"required,min=1,max=500"`
	RequestMessage string `json:"requestMessage" validate:"required,min=30,max=500"`
}

type UpdateStoreInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Address     string `json:"address,omitempty" validate:"omitempty,min=1,max=500"`
}

// Validate adds the at-least-one-field rule on top of the tag checks.
func (u UpdateStoreInput) Validate() error {
	if u.Name == "" && u.Description == "" && u.Address == "" {
		return &ValidationError{Fields: []FieldError{{
			Field:   "",
			Message: "At least one field (name, description, or address) must be provided",
		}}}
	}
	return Validate(u)
}

type CreateStoreRequestInput struct {
	RequestMessage string `json:"requestMessage" validate:"required,min=30,max=500"`
}

// CreateProductInput carries the multipart product form. Price and Quantity
// stay strings here because they arrive as form fields; the price tag checks
// the two-decimal shape and the server parses them.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	CategoryID  string `json:"category" validate:"required,uuid4"`
	Description string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Price       string `json:"price" validate:"required,price"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateProductInput is the partial product form; every field is optional.
type UpdateProductInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CategoryID  string `json:"category,omitempty" validate:"omitempty,uuid4"`
	Description string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Price       string `json:"price,omitempty" validate:"omitempty,price"`
	Quantity    int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}
