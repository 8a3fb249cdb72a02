package sync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/storefront"
	"github.com/google/uuid"
)

func TestStripGlobalID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"global id", "gid://shopify/Customer/6816914718813", "6816914718813"},
		{"bare id passes through", "6816914718813", "6816914718813"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripGlobalID(tt.id))
			// Applying twice must not change the result.
			assert.Equal(t, tt.want, StripGlobalID(StripGlobalID(tt.id)))
		})
	}
}

func TestWrapGlobalID(t *testing.T) {
	assert.Equal(t, "gid://shopify/Customer/123", WrapGlobalID("Customer", "123"))
	assert.Equal(t, "gid://shopify/Product/99", WrapGlobalID("Product", "99"))

	// Already-wrapped ids are left alone.
	wrapped := "gid://shopify/Customer/123"
	assert.Equal(t, wrapped, WrapGlobalID("Customer", wrapped))
}

func TestValidateRemoteID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"numeric", "6816914718813", false},
		{"global id form", "gid://shopify/Customer/123", false},
		{"empty", "", true},
		{"alphabetic", "abc123", true},
		{"negative", "-42", true},
		{"whitespace", " 123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRemoteID(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, storefront.ErrInvalidRemoteID)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMoneyAmount(t *testing.T) {
	t.Run("nil money is zero with blank currency", func(t *testing.T) {
		amount, currency := MoneyAmount(nil)
		assert.True(t, amount.IsZero())
		assert.Empty(t, currency)
	})

	t.Run("blank amount is zero with blank currency", func(t *testing.T) {
		amount, currency := MoneyAmount(&storefront.RemoteMoney{Amount: "   ", CurrencyCode: "USD"})
		assert.True(t, amount.IsZero())
		assert.Empty(t, currency)
	})

	t.Run("amount and currency carried through", func(t *testing.T) {
		amount, currency := MoneyAmount(&storefront.RemoteMoney{Amount: "199.99", CurrencyCode: "usd"})
		assert.True(t, amount.Equal(decimal.RequireFromString("199.99")))
		assert.Equal(t, "USD", currency)
	})

	t.Run("explicit zero keeps its currency", func(t *testing.T) {
		amount, currency := MoneyAmount(&storefront.RemoteMoney{Amount: "0.00", CurrencyCode: "INR"})
		assert.True(t, amount.IsZero())
		assert.Equal(t, "INR", currency)
	})
}

func TestCoerceAmount(t *testing.T) {
	assert.True(t, CoerceAmount("").IsZero())
	assert.True(t, CoerceAmount("not-a-number").IsZero())
	assert.True(t, CoerceAmount("12.50").Equal(decimal.RequireFromString("12.50")))
	assert.True(t, CoerceAmount("  7 ").Equal(decimal.NewFromInt(7)))
}

func TestEncodeDecodeTags(t *testing.T) {
	t.Run("nil encodes as empty array", func(t *testing.T) {
		assert.Equal(t, "[]", EncodeTags(nil))
	})

	t.Run("round trip", func(t *testing.T) {
		stored := EncodeTags([]string{"vip", "wholesale"})
		assert.Equal(t, `["vip","wholesale"]`, stored)
		assert.Equal(t, []string{"vip", "wholesale"}, DecodeTags(stored))
	})

	t.Run("blank decodes as empty list", func(t *testing.T) {
		assert.Empty(t, DecodeTags(""))
		assert.Empty(t, DecodeTags("   "))
	})

	t.Run("comma-joined scalar is accepted", func(t *testing.T) {
		assert.Equal(t, []string{"vip", "wholesale"}, DecodeTags("vip, wholesale"))
	})
}

func TestSplitScalarTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitScalarTags(" a , b ,, "))
	assert.Empty(t, SplitScalarTags(",,"))
}

func TestMapRemoteAddress(t *testing.T) {
	t.Run("valid address is trimmed", func(t *testing.T) {
		addr, err := MapRemoteAddress(storefront.RemoteAddress{
			Address1: " 1 Main St ",
			City:     "Pune",
			Province: "MH",
			Country:  "India",
			Zip:      "411001",
		})
		require.NoError(t, err)
		assert.Equal(t, "1 Main St", addr.Address1)
		assert.Equal(t, "Pune", addr.City)
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		_, err := MapRemoteAddress(storefront.RemoteAddress{City: "Pune"})
		assert.Error(t, err)
	})
}

func TestMapRemoteCustomer(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		rc := &storefront.RemoteCustomer{
			ID:             "gid://shopify/Customer/42",
			FirstName:      " Asha ",
			LastName:       "Rao",
			Email:          "asha@example.com",
			Phone:          "+911234567890",
			Note:           "prefers email",
			Tags:           []string{"vip"},
			NumberOfOrders: 3,
			AmountSpent:    &storefront.RemoteMoney{Amount: "540.00", CurrencyCode: "INR"},
			DefaultAddress: &storefront.RemoteAddress{
				Address1: "1 Main St",
				City:     "Pune",
				Province: "MH",
				Country:  "India",
			},
			Addresses: []storefront.RemoteAddress{
				{Address1: "1 Main St", City: "Pune", Province: "MH", Country: "India"},
			},
		}
		f, err := MapRemoteCustomer(rc)
		require.NoError(t, err)
		assert.Equal(t, "42", f.RemoteID)
		assert.Equal(t, "Asha", f.FirstName)
		assert.Equal(t, `["vip"]`, f.Tags)
		assert.Equal(t, int64(3), f.OrdersCount)
		assert.True(t, f.TotalSpent.Equal(decimal.RequireFromString("540.00")))
		assert.Equal(t, "Pune", f.City)
		assert.Equal(t, "MH", f.State)
		assert.Equal(t, "India", f.Country)
		assert.Equal(t, "1 Main St", f.DefaultAddressLine)
		assert.Equal(t, "Pune, MH, India", f.DefaultAddressArea)
		require.Len(t, f.Addresses, 1)
	})

	t.Run("invalid address fails the record", func(t *testing.T) {
		rc := &storefront.RemoteCustomer{
			ID:    "43",
			Email: "bad@example.com",
			Addresses: []storefront.RemoteAddress{
				{City: "Pune"},
			},
		}
		_, err := MapRemoteCustomer(rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address 1")
	})

	t.Run("no default address leaves the cache blank", func(t *testing.T) {
		f, err := MapRemoteCustomer(&storefront.RemoteCustomer{ID: "44", Email: "x@example.com"})
		require.NoError(t, err)
		assert.Empty(t, f.City)
		assert.Empty(t, f.DefaultAddressArea)
	})
}

func TestCustomerToInput(t *testing.T) {
	tenantID := uuid.New()

	t.Run("create omits id", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)

		input, err := CustomerToInput(c, false)
		require.NoError(t, err)
		assert.Empty(t, input.ID)
		assert.Equal(t, "Asha", input.FirstName)
	})

	t.Run("update wraps the remote id", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)
		c.RemoteID = "42"

		input, err := CustomerToInput(c, true)
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Customer/42", input.ID)
	})

	t.Run("update with corrupt remote id fails", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)
		c.RemoteID = "not-an-id"

		_, err = CustomerToInput(c, true)
		assert.ErrorIs(t, err, storefront.ErrInvalidRemoteID)
	})

	t.Run("default-address cache fills in when no list exists", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)
		c.DefaultAddressLine = "1 Main St"
		c.City = "Pune"
		c.State = "MH"
		c.Country = "India"

		input, err := CustomerToInput(c, false)
		require.NoError(t, err)
		require.Len(t, input.Addresses, 1)
		assert.Equal(t, "1 Main St", input.Addresses[0].Address1)
		assert.Equal(t, "Pune", input.Addresses[0].City)
	})

	t.Run("explicit address list wins over the cache", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)
		c.City = "Pune"
		require.NoError(t, c.SetAddresses([]customer.Address{
			{Address1: "2 Side St", City: "Mumbai", Province: "MH", Country: "India"},
		}))

		input, err := CustomerToInput(c, false)
		require.NoError(t, err)
		require.Len(t, input.Addresses, 1)
		assert.Equal(t, "2 Side St", input.Addresses[0].Address1)
	})

	t.Run("corrupt stored tags fail", func(t *testing.T) {
		c, err := customer.NewCustomer(tenantID, "Asha", "Rao", "asha@example.com", "")
		require.NoError(t, err)
		c.Tags = "{broken"

		_, err = CustomerToInput(c, false)
		assert.Error(t, err)
	})
}

func TestMapRemoteProduct(t *testing.T) {
	t.Run("full record with variants", func(t *testing.T) {
		rp := &storefront.RemoteProduct{
			ID:          "gid://shopify/Product/7",
			Title:       " Tea Kettle ",
			Vendor:      "Acme",
			ProductType: "Kitchen",
			Status:      "ACTIVE",
			Tags:        []string{"steel"},
			Variants: []storefront.RemoteVariant{
				{ID: "gid://shopify/ProductVariant/70", Title: "1L", SKU: "TK-1", Price: "25.00", InventoryQuantity: 4},
			},
		}
		f, err := MapRemoteProduct(rp)
		require.NoError(t, err)
		assert.Equal(t, "7", f.RemoteID)
		assert.Equal(t, "Tea Kettle", f.Title)
		assert.Equal(t, catalog.ProductStatusActive, f.Status)
		require.Len(t, f.Variants, 1)
		assert.Equal(t, "70", f.Variants[0].RemoteID)
		assert.True(t, f.Variants[0].Price.Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := MapRemoteProduct(&storefront.RemoteProduct{ID: "8", Title: "  "})
		assert.Error(t, err)
	})
}

func TestMapProductStatus(t *testing.T) {
	assert.Equal(t, catalog.ProductStatusActive, mapProductStatus("ACTIVE"))
	assert.Equal(t, catalog.ProductStatusActive, mapProductStatus(" active "))
	assert.Equal(t, catalog.ProductStatusArchived, mapProductStatus("ARCHIVED"))
	assert.Equal(t, catalog.ProductStatusDraft, mapProductStatus("DRAFT"))
	assert.Equal(t, catalog.ProductStatusDraft, mapProductStatus("anything-else"))
	assert.Equal(t, catalog.ProductStatusDraft, mapProductStatus(""))
}

func TestProductToInput(t *testing.T) {
	ownerID := uuid.New()

	newProduct := func(t *testing.T) *catalog.Product {
		t.Helper()
		p, err := catalog.NewProduct(ownerID, "Tea Kettle")
		require.NoError(t, err)
		return p
	}

	t.Run("create carries status and variants", func(t *testing.T) {
		p := newProduct(t)
		p.Status = catalog.ProductStatusActive
		p.Variants = []catalog.ProductVariant{
			{Title: "1L", SKU: "TK-1", Price: decimal.RequireFromString("25.00")},
		}

		input, err := ProductToInput(p, false)
		require.NoError(t, err)
		assert.Empty(t, input.ID)
		assert.Equal(t, "ACTIVE", input.Status)
		require.Len(t, input.Variants, 1)
		assert.Empty(t, input.Variants[0].ID)
		assert.Equal(t, "25", input.Variants[0].Price)
	})

	t.Run("update wraps product and variant ids", func(t *testing.T) {
		p := newProduct(t)
		p.RemoteID = "7"
		p.Variants = []catalog.ProductVariant{
			{RemoteID: "70", Title: "1L", Price: decimal.NewFromInt(25)},
		}

		input, err := ProductToInput(p, true)
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Product/7", input.ID)
		require.Len(t, input.Variants, 1)
		assert.Equal(t, "gid://shopify/ProductVariant/70", input.Variants[0].ID)
	})

	t.Run("corrupt variant remote id fails", func(t *testing.T) {
		p := newProduct(t)
		p.RemoteID = "7"
		p.Variants = []catalog.ProductVariant{{RemoteID: "junk"}}

		_, err := ProductToInput(p, true)
		assert.ErrorIs(t, err, storefront.ErrInvalidRemoteID)
	})
}
