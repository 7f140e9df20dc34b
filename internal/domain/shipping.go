package domain

// City, District and Ward form the three-level address cascade. Codes are
// opaque carrier identifiers.
type City struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type District struct {
	Code     string `json:"code"`
	CityCode string `json:"cityCode"`
	Name     string `json:"name"`
}

type Ward struct {
	Code         string `json:"code"`
	DistrictCode string `json:"districtCode"`
	Name         string `json:"name"`
}

// Parcel carries the physical attributes of the shipment.
type Parcel struct {
	WeightGrams int `json:"weightGrams"`
	LengthCM    int `json:"lengthCm,omitempty"`
	WidthCM     int `json:"widthCm,omitempty"`
	HeightCM    int `json:"heightCm,omitempty"`
}

// FeeRequest is the fully resolved input for a shipping quote: the address
// triple plus parcel attributes and the order amount.
type FeeRequest struct {
	CityCode       string `json:"cityCode"`
	DistrictCode   string `json:"districtCode"`
	WardCode       string `json:"wardCode"`
	Parcel         Parcel `json:"parcel"`
	CashOnDelivery bool   `json:"cashOnDelivery"`
	Amount         int64  `json:"amount"`
}

// ShippingQuote is the carrier's resolved fee plus whatever metadata it
// returned. Always derived from one FeeRequest; never patched in place.
type ShippingQuote struct {
	Fee               int64  `json:"fee"`
	Carrier           string `json:"carrier,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
}
