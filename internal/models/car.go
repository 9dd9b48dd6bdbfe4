package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NullString is a scraped text value that may be absent from the page.
// The zero value is absent.
type NullString struct {
	String string
	Valid  bool
}

// Text returns a present NullString holding s.
func Text(s string) NullString {
	return NullString{String: s, Valid: true}
}

// Value implements the driver.Valuer interface so absent values are stored as NULL.
func (n NullString) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.String, nil
}

// Scan implements the sql.Scanner interface.
func (n *NullString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*n = NullString{}
	case string:
		*n = Text(v)
	case []byte:
		*n = Text(string(v))
	default:
		return fmt.Errorf("unsupported type for NullString: %T", value)
	}
	return nil
}

// MarshalJSON renders absent values as null.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// UnmarshalJSON accepts a string or null.
func (n *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*n = NullString{}
		return nil
	}
	*n = Text(*s)
	return nil
}

// Column names, in output order.
const (
	ColURL              = "url"
	ColScrapingDate     = "scraping_date"
	ColTitle            = "title"
	ColPrice            = "price"
	ColRegistrationDate = "registration_date"
	ColDepreciation     = "depreciation"
	ColMileage          = "mileage"
	ColTransmission     = "transmission"
	ColEngineCap        = "engine_cap"
	ColRoadTax          = "road_tax"
	ColPower            = "power"
	ColTypeOfVehicle    = "type_of_vehicle"
	ColCategory         = "category"
	ColCOE              = "coe"
	ColNoOfOwners       = "no_of_owners"
	ColAvailability     = "availability"
)

// CarColumns is the fixed column order of every tabular export.
var CarColumns = []string{
	ColURL, ColScrapingDate, ColTitle, ColPrice, ColRegistrationDate,
	ColDepreciation, ColMileage, ColTransmission, ColEngineCap, ColRoadTax,
	ColPower, ColTypeOfVehicle, ColCategory, ColCOE, ColNoOfOwners,
	ColAvailability,
}

// CarRecord holds everything extracted from one listing detail page.
// URL and ScrapingDate are always set; every other field may be absent.
type CarRecord struct {
	URL              string     `json:"url"`
	ScrapingDate     string     `json:"scraping_date"`
	Title            NullString `json:"title"`
	Price            NullString `json:"price"`
	RegistrationDate NullString `json:"registration_date"`
	Depreciation     NullString `json:"depreciation"`
	Mileage          NullString `json:"mileage"`
	Transmission     NullString `json:"transmission"`
	EngineCap        NullString `json:"engine_cap"`
	RoadTax          NullString `json:"road_tax"`
	Power            NullString `json:"power"`
	TypeOfVehicle    NullString `json:"type_of_vehicle"`
	Category         NullString `json:"category"`
	COE              NullString `json:"coe"`
	NoOfOwners       NullString `json:"no_of_owners"`
	Availability     NullString `json:"availability"`

	// Lookups keeps the outcome of every field lookup, keyed by column.
	// It is diagnostic only and never exported.
	Lookups map[string]FieldResult `json:"-"`
}

// field returns a pointer to the optional field stored under column.
func (c *CarRecord) field(column string) *NullString {
	switch column {
	case ColTitle:
		return &c.Title
	case ColPrice:
		return &c.Price
	case ColRegistrationDate:
		return &c.RegistrationDate
	case ColDepreciation:
		return &c.Depreciation
	case ColMileage:
		return &c.Mileage
	case ColTransmission:
		return &c.Transmission
	case ColEngineCap:
		return &c.EngineCap
	case ColRoadTax:
		return &c.RoadTax
	case ColPower:
		return &c.Power
	case ColTypeOfVehicle:
		return &c.TypeOfVehicle
	case ColCategory:
		return &c.Category
	case ColCOE:
		return &c.COE
	case ColNoOfOwners:
		return &c.NoOfOwners
	case ColAvailability:
		return &c.Availability
	}
	return nil
}

// Set stores v under an optional column. URL and ScrapingDate are plain
// fields and cannot be set this way.
func (c *CarRecord) Set(column string, v NullString) error {
	f := c.field(column)
	if f == nil {
		return fmt.Errorf("unknown or required column %q", column)
	}
	*f = v
	return nil
}

// Get returns the value stored under column.
func (c *CarRecord) Get(column string) NullString {
	switch column {
	case ColURL:
		return Text(c.URL)
	case ColScrapingDate:
		return Text(c.ScrapingDate)
	}
	if f := c.field(column); f != nil {
		return *f
	}
	return NullString{}
}

// Row returns the record as text cells in CarColumns order.
// Absent values become empty cells.
func (c *CarRecord) Row() []string {
	row := make([]string, len(CarColumns))
	for i, col := range CarColumns {
		row[i] = c.Get(col).String
	}
	return row
}

// Values returns the record as database values in CarColumns order.
func (c *CarRecord) Values() []interface{} {
	values := make([]interface{}, len(CarColumns))
	for i, col := range CarColumns {
		switch col {
		case ColURL:
			values[i] = c.URL
		case ColScrapingDate:
			values[i] = c.ScrapingDate
		default:
			values[i] = *c.field(col)
		}
	}
	return values
}

// ScanDest returns pointers to every field in CarColumns order, for rows.Scan.
func (c *CarRecord) ScanDest() []interface{} {
	dest := make([]interface{}, len(CarColumns))
	for i, col := range CarColumns {
		switch col {
		case ColURL:
			dest[i] = &c.URL
		case ColScrapingDate:
			dest[i] = &c.ScrapingDate
		default:
			dest[i] = c.field(col)
		}
	}
	return dest
}
