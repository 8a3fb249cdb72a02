package ecommerce

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/storefront"
)

// Wire-shape structs for the platform's GraphQL responses. One decoding
// step turns these into the typed remote records the domain port defines;
// nothing downstream probes raw JSON.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m *moneyNode) toDomain() *storefront.RemoteMoney {
	if m == nil {
		return nil
	}
	return &storefront.RemoteMoney{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

// moneySet is the nested price-set shape used by the orders collection.
type moneySet struct {
	ShopMoney *moneyNode `json:"shopMoney"`
}

func (m *moneySet) toDomain() *storefront.RemoteMoney {
	if m == nil {
		return nil
	}
	return m.ShopMoney.toDomain()
}

type addressNode struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

func (n *addressNode) toDomain() storefront.RemoteAddress {
	return storefront.RemoteAddress{
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Address1:  n.Address1,
		Address2:  n.Address2,
		City:      n.City,
		Province:  n.Province,
		Country:   n.Country,
		Zip:       n.Zip,
		Phone:     n.Phone,
	}
}

// tagList accepts both the list form and the legacy comma-joined scalar,
// so tags are never silently dropped on decode.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		parts := strings.Split(scalar, ",")
		tags := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		*t = tags
		return nil
	}
	return fmt.Errorf("tags: expected list or string, got %s", string(data))
}

type customerNode struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	VerifiedEmail  bool          `json:"verifiedEmail"`
	NumberOfOrders json.Number   `json:"numberOfOrders"`
	AmountSpent    *moneyNode    `json:"amountSpent"`
	DefaultAddress *addressNode  `json:"defaultAddress"`
	Addresses      []addressNode `json:"addresses"`
	CreatedAt      *time.Time    `json:"createdAt"`
	UpdatedAt      *time.Time    `json:"updatedAt"`
	Tags           tagList       `json:"tags"`
	Note           string        `json:"note"`
}

func (n *customerNode) toDomain() storefront.RemoteCustomer {
	// The platform serializes the order count as a quoted number.
	orders, _ := n.NumberOfOrders.Int64()
	rc := storefront.RemoteCustomer{
		ID:             n.ID,
		FirstName:      n.FirstName,
		LastName:       n.LastName,
		Email:          n.Email,
		Phone:          n.Phone,
		VerifiedEmail:  n.VerifiedEmail,
		Note:           n.Note,
		Tags:           n.Tags,
		AmountSpent:    n.AmountSpent.toDomain(),
		NumberOfOrders: orders,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
	if n.DefaultAddress != nil {
		addr := n.DefaultAddress.toDomain()
		rc.DefaultAddress = &addr
	}
	for i := range n.Addresses {
		rc.Addresses = append(rc.Addresses, n.Addresses[i].toDomain())
	}
	return rc
}

type lineItemNode struct {
	Title             string     `json:"title"`
	VariantTitle      string     `json:"variantTitle"`
	Quantity          int        `json:"quantity"`
	OriginalUnitPrice string     `json:"originalUnitPrice"`
	SKU               string     `json:"sku"`
	Variant           *struct {
		ID string `json:"id"`
	} `json:"variant"`
}

func (n *lineItemNode) toDomain() storefront.RemoteLineItem {
	item := storefront.RemoteLineItem{
		Title:    n.Title,
		SKU:      n.SKU,
		Quantity: n.Quantity,
	}
	if strings.TrimSpace(n.OriginalUnitPrice) != "" {
		item.UnitPrice = &storefront.RemoteMoney{Amount: n.OriginalUnitPrice}
	}
	if n.Variant != nil {
		item.VariantID = n.Variant.ID
	}
	return item
}

type orderNode struct {
	ID                       string       `json:"id"`
	Name                     string       `json:"name"`
	Email                    string       `json:"email"`
	Phone                    string       `json:"phone"`
	CreatedAt                *time.Time   `json:"createdAt"`
	ProcessedAt              *time.Time   `json:"processedAt"`
	DisplayFinancialStatus   string       `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string       `json:"displayFulfillmentStatus"`
	Tags                     tagList      `json:"tags"`
	Note                     string       `json:"note"`
	SubtotalPriceSet         *moneySet    `json:"subtotalPriceSet"`
	TotalShippingPriceSet    *moneySet    `json:"totalShippingPriceSet"`
	TotalTaxSet              *moneySet    `json:"totalTaxSet"`
	TotalPriceSet            *moneySet    `json:"totalPriceSet"`
	ShippingAddress          *addressNode `json:"shippingAddress"`
	BillingAddress           *addressNode `json:"billingAddress"`
	Customer                 *struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
	} `json:"customer"`
	LineItems struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

func (n *orderNode) toDomain() storefront.RemoteOrder {
	ro := storefront.RemoteOrder{
		ID:                n.ID,
		Name:              n.Name,
		Email:             n.Email,
		Phone:             n.Phone,
		FinancialStatus:   n.DisplayFinancialStatus,
		FulfillmentStatus: n.DisplayFulfillmentStatus,
		Tags:              n.Tags,
		Note:              n.Note,
		Subtotal:          n.SubtotalPriceSet.toDomain(),
		TotalShipping:     n.TotalShippingPriceSet.toDomain(),
		TotalTax:          n.TotalTaxSet.toDomain(),
		Total:             n.TotalPriceSet.toDomain(),
		CreatedAt:         n.CreatedAt,
		ProcessedAt:       n.ProcessedAt,
	}
	if n.ShippingAddress != nil {
		addr := n.ShippingAddress.toDomain()
		ro.ShippingAddress = &addr
	}
	if n.BillingAddress != nil {
		addr := n.BillingAddress.toDomain()
		ro.BillingAddress = &addr
	}
	if n.Customer != nil {
		ro.Customer = &storefront.RemoteOrderCustomer{
			ID:        n.Customer.ID,
			Email:     n.Customer.Email,
			FirstName: n.Customer.FirstName,
			LastName:  n.Customer.LastName,
			Phone:     n.Customer.Phone,
		}
	}
	for i := range n.LineItems.Edges {
		ro.LineItems = append(ro.LineItems, n.LineItems.Edges[i].Node.toDomain())
	}
	return ro
}

type variantNode struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventoryQuantity"`
}

func (n *variantNode) toDomain() storefront.RemoteVariant {
	return storefront.RemoteVariant{
		ID:                n.ID,
		Title:             n.Title,
		SKU:               n.SKU,
		Price:             n.Price,
		InventoryQuantity: n.InventoryQuantity,
	}
}

type productNode struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"productType"`
	Status      string     `json:"status"`
	Tags        tagList    `json:"tags"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	Variants    struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n *productNode) toDomain() storefront.RemoteProduct {
	rp := storefront.RemoteProduct{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Vendor:      n.Vendor,
		ProductType: n.ProductType,
		Status:      n.Status,
		Tags:        n.Tags,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	for i := range n.Variants.Edges {
		rp.Variants = append(rp.Variants, n.Variants.Edges[i].Node.toDomain())
	}
	return rp
}

// connection is the generic edges/pageInfo wrapper.
type connection[T any] struct {
	PageInfo pageInfo `json:"pageInfo"`
	Edges    []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

type userErrorNode struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// toUserErrors converts mutation userErrors to the domain error type, or
// nil when the list is empty.
func toUserErrors(nodes []userErrorNode) error {
	if len(nodes) == 0 {
		return nil
	}
	errs := make(storefront.UserErrors, 0, len(nodes))
	for _, n := range nodes {
		errs = append(errs, storefront.UserError{Field: n.Field, Message: n.Message})
	}
	return errs
}
