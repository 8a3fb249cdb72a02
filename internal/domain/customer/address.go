package customer

import (
	"strings"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Field length ceilings enforced at write time.
const (
	MaxAddressLineLen = 255
	MaxCityLen        = 100
	MaxProvinceLen    = 100
	MaxCountryLen     = 100
	MaxZipLen         = 20
)

// Address is one entry in a customer's ordered address list.
// Address1, City, Province and Country are required; Zip is optional.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate checks the required-field set and per-field length ceilings,
// reporting every violation at once.
func (a *Address) Validate() error {
	var errs shared.ValidationErrors
	errs.RequireNonBlank("address1", a.Address1)
	errs.RequireNonBlank("city", a.City)
	errs.RequireNonBlank("province", a.Province)
	errs.RequireNonBlank("country", a.Country)
	errs.RequireMaxLen("address1", a.Address1, MaxAddressLineLen)
	errs.RequireMaxLen("address2", a.Address2, MaxAddressLineLen)
	errs.RequireMaxLen("city", a.City, MaxCityLen)
	errs.RequireMaxLen("province", a.Province, MaxProvinceLen)
	errs.RequireMaxLen("country", a.Country, MaxCountryLen)
	errs.RequireMaxLen("zip", a.Zip, MaxZipLen)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// FormattedArea joins city, province and country with ", ", skipping blanks.
func (a *Address) FormattedArea() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.Province, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
