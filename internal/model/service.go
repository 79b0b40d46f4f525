package model

const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// Service is an item of the clinic's treatment catalogue.
type Service struct {
	Base
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description,omitempty"`
	Duration    int     `db:"duration" json:"duration"` // in minutes
	Price       float64 `db:"price" json:"price"`
	Status      string  `db:"status" json:"status"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}
