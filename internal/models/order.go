package models

import (
	"sokoni-backend/internal/utils"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// Item is a line entry in an order, cart, or saved list.
type Item struct {
	ID    string   `json:"id" validate:"required"`
	Qty   *float64 `json:"qty" validate:"required"`
	Price *float64 `json:"price" validate:"required"`
	Name  string   `json:"name" validate:"required"`
	Unit  string   `json:"unit" validate:"required"`
}

func validateItems(items []Item) error {
	for i := range items {
		if err := utils.ValidateStruct(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

// VendorContact is the vendor snapshot attached to an order during
// fulfilment.
type VendorContact struct {
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
}

// OrderCreate is the order placement payload. Fulfilment fields (vendor,
// delivery, ratings, comment) are accepted by validation but enter the
// stored document only through later updates.
type OrderCreate struct {
	CustomerName   string         `json:"customerName" validate:"required"`
	Contact        string         `json:"contact" validate:"required"`
	Email          string         `json:"email" validate:"required,min=5,email"`
	CID            string         `json:"cid" validate:"required"`
	Location       *Location      `json:"location,omitempty"`
	VID            string         `json:"vid,omitempty"`
	Items          []Item         `json:"items" validate:"required"`
	TotalCost      *float64       `json:"totalCost" validate:"required"`
	Offer          *OfferRef      `json:"offer" validate:"required"`
	Discount       *float64       `json:"discount" validate:"required"`
	FinalCost      *float64       `json:"finalCost" validate:"required"`
	OrderRating    *float64       `json:"orderRating,omitempty"`
	DeliveryRating *float64       `json:"deliveryRating,omitempty"`
	VendorRating   *float64       `json:"vendorRating,omitempty"`
	Status         string         `json:"status,omitempty"`
	Comment        string         `json:"comment,omitempty"`
	PaymentStatus  string         `json:"paymentStatus" validate:"required"`
	PaymentType    string         `json:"paymentType" validate:"required"`
	TimeAssigned   string         `json:"timeAssigned" validate:"required"`
	TimeDelivered  string         `json:"timeDelivered,omitempty"`
	DeliveryBoy    string         `json:"deliveryBoy,omitempty"`
	DID            string         `json:"did,omitempty"`
	Vendor         *VendorContact `json:"vendor,omitempty"`
	VendorName     string         `json:"vendorName,omitempty"`
}

func (o *OrderCreate) Validate() error {
	if err := utils.ValidateStruct(o); err != nil {
		return err
	}
	if o.Location != nil {
		if err := utils.ValidateStruct(o.Location); err != nil {
			return err
		}
	}
	return validateItems(o.Items)
}

// OrderUpdate is the partial order update payload, covering fulfilment
// progress: status changes, vendor/delivery assignment, ratings, comments.
type OrderUpdate struct {
	ID             string         `json:"id" validate:"required"`
	CustomerName   *string        `json:"customerName,omitempty"`
	Contact        *string        `json:"contact,omitempty"`
	Email          *string        `json:"email,omitempty" validate:"min=5,email"`
	CID            *string        `json:"cid,omitempty"`
	Location       *Location      `json:"location,omitempty"`
	VID            *string        `json:"vid,omitempty"`
	Items          *[]Item        `json:"items,omitempty"`
	TotalCost      *float64       `json:"totalCost,omitempty"`
	Offer          *OfferRef      `json:"offer,omitempty"`
	Discount       *float64       `json:"discount,omitempty"`
	FinalCost      *float64       `json:"finalCost,omitempty"`
	OrderRating    *float64       `json:"orderRating,omitempty"`
	DeliveryRating *float64       `json:"deliveryRating,omitempty"`
	VendorRating   *float64       `json:"vendorRating,omitempty"`
	Status         *string        `json:"status,omitempty"`
	Comment        *string        `json:"comment,omitempty"`
	PaymentStatus  *string        `json:"paymentStatus,omitempty"`
	PaymentType    *string        `json:"paymentType,omitempty"`
	TimeAssigned   *string        `json:"timeAssigned,omitempty"`
	TimeDelivered  *string        `json:"timeDelivered,omitempty"`
	DeliveryBoy    *string        `json:"deliveryBoy,omitempty"`
	DID            *string        `json:"did,omitempty"`
	Vendor         *VendorContact `json:"vendor,omitempty"`
	VendorName     *string        `json:"vendorName,omitempty"`
}

func (o *OrderUpdate) Validate() error {
	if err := utils.ValidateStruct(o); err != nil {
		return err
	}
	if o.Location != nil {
		if err := utils.ValidateStruct(o.Location); err != nil {
			return err
		}
	}
	if o.Items != nil {
		return validateItems(*o.Items)
	}
	return nil
}

// NewOrderDocument builds the stored order: allow-listed placement fields
// only, ratings zeroed, status forced to PLACED. Offer, discount and vendor
// details do not enter the document at placement even when the payload
// carries them.
func NewOrderDocument(req *OrderCreate, keywords []string) map[string]any {
	return map[string]any{
		"customerName":   req.CustomerName,
		"contact":        req.Contact,
		"email":          req.Email,
		"cid":            req.CID,
		"location":       req.Location,
		"items":          req.Items,
		"totalCost":      req.TotalCost,
		"finalCost":      req.FinalCost,
		"orderRating":    0,
		"deliveryRating": 0,
		"vendorRating":   0,
		"status":         string(OrderStatusPlaced),
		"paymentStatus":  req.PaymentStatus,
		"paymentType":    req.PaymentType,
		"timeAssigned":   req.TimeAssigned,
		"keywords":       keywords,
	}
}

// CartUpdate replaces the contents of a customer's cart.
type CartUpdate struct {
	ID        string    `json:"id" validate:"required"`
	Items     *[]Item   `json:"items" validate:"required"`
	TotalCost *float64  `json:"totalCost,omitempty"`
	Offer     *OfferRef `json:"offer,omitempty"`
	Discount  *float64  `json:"discount,omitempty"`
	CID       *string   `json:"cid,omitempty"`
}

func (c *CartUpdate) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.Items != nil {
		return validateItems(*c.Items)
	}
	return nil
}

// SavedUpdate replaces the contents of a customer's saved list.
type SavedUpdate struct {
	ID    string  `json:"id" validate:"required"`
	Items *[]Item `json:"items" validate:"required"`
	CID   *string `json:"cid,omitempty"`
}

func (s *SavedUpdate) Validate() error {
	if err := utils.ValidateStruct(s); err != nil {
		return err
	}
	if s.Items != nil {
		return validateItems(*s.Items)
	}
	return nil
}

// NewCartDocument builds the empty cart provisioned at customer
// registration.
func NewCartDocument(cid string) map[string]any {
	return map[string]any{
		"items":     []Item{},
		"totalCost": 0,
		"offer":     "NA",
		"discount":  0,
		"cid":       cid,
	}
}

// NewSavedDocument builds the empty saved list provisioned at customer
// registration.
func NewSavedDocument(cid string) map[string]any {
	return map[string]any{
		"items": []Item{},
		"cid":   cid,
	}
}
