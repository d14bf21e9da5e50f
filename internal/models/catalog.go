package models

import (
	"strings"

	"sokoni-backend/internal/utils"
)

// ProductStatus is the catalog availability state.
type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "AVAILABLE"
)

// OfferRef attaches an offer to a product or order by name and id.
type OfferRef struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// Quantity is a sale unit, e.g. {value: 2, unit: "L"}.
type Quantity struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"`
}

// ProductCreate is the product listing payload. A product is unique per
// (name, vendor, manufacturer).
type ProductCreate struct {
	Name         string    `json:"name" validate:"required"`
	Manufacturer string    `json:"manufacturer" validate:"required"`
	Brand        string    `json:"brand" validate:"required"`
	VID          string    `json:"vid" validate:"required"`
	Images       []string  `json:"images" validate:"required"`
	Price        *float64  `json:"price" validate:"required"`
	Offer        *OfferRef `json:"offer" validate:"required"`
	Qty          *Quantity `json:"qty,omitempty"`
	Description  string    `json:"description" validate:"required"`
	Features     string    `json:"features" validate:"required"`
	OtherNames   []string  `json:"otherNames,omitempty"`
	Life         string    `json:"life" validate:"required"`
	Rating       *float64  `json:"rating" validate:"required"`
	Category     string    `json:"category" validate:"required"`
	Status       string    `json:"status,omitempty"`
}

func (p *ProductCreate) Validate() error {
	return utils.ValidateStruct(p)
}

// ProductUpdate is the partial product update payload. Name, vendor and
// manufacturer identity fields stay fixed except name, which may be renamed.
type ProductUpdate struct {
	ID          string    `json:"id" validate:"required"`
	Name        *string   `json:"name,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Offer       *OfferRef `json:"offer,omitempty"`
	Qty         *Quantity `json:"qty,omitempty"`
	Description *string   `json:"description,omitempty"`
	Features    *string   `json:"features,omitempty"`
	OtherNames  *[]string `json:"otherNames,omitempty"`
	Life        *string   `json:"life,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

func (p *ProductUpdate) Validate() error {
	return utils.ValidateStruct(p)
}

// NewProductDocument builds the stored listing: allow-listed fields only,
// code derived from the uppercased name, availability defaulted, and the
// search keywords supplied by the caller.
func NewProductDocument(req *ProductCreate, keywords []string) map[string]any {
	return map[string]any{
		"name":         req.Name,
		"code":         strings.ToUpper(req.Name),
		"manufacturer": req.Manufacturer,
		"category":     req.Category,
		"brand":        req.Brand,
		"vid":          req.VID,
		"images":       req.Images,
		"price":        req.Price,
		"offer":        req.Offer,
		"qty":          req.Qty,
		"description":  req.Description,
		"features":     req.Features,
		"otherNames":   req.OtherNames,
		"life":         req.Life,
		"rating":       req.Rating,
		"keywords":     keywords,
		"status":       string(ProductStatusAvailable),
	}
}

// CategoryCreate is the category payload. Category names are unique.
type CategoryCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
	Offer       string `json:"offer,omitempty"`
}

func (c *CategoryCreate) Validate() error {
	return utils.ValidateStruct(c)
}

// NewCategoryDocument builds the stored category; the offer attachment is
// included only when present.
func NewCategoryDocument(req *CategoryCreate) map[string]any {
	doc := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"image":       req.Image,
	}
	if req.Offer != "" {
		doc["offer"] = req.Offer
	}
	return doc
}

// OfferCreate is the discount offer payload. Offers are unique per
// (name, code).
type OfferCreate struct {
	Name     string   `json:"name" validate:"required"`
	Code     string   `json:"code" validate:"required"`
	Discount *float64 `json:"discount" validate:"required"`
	Unit     string   `json:"unit" validate:"required"`
}

func (o *OfferCreate) Validate() error {
	return utils.ValidateStruct(o)
}

// NewOfferDocument builds the stored offer.
func NewOfferDocument(req *OfferCreate) map[string]any {
	return map[string]any{
		"name":     req.Name,
		"code":     req.Code,
		"discount": req.Discount,
		"unit":     req.Unit,
	}
}
