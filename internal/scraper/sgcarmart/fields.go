package sgcarmart

import "CarmartScraper/internal/models"

// CSS selectors for sgcarmart pages.
const (
	// CarLinkSelector matches the title link of every car on a listing page.
	CarLinkSelector = "h2.link a"
	// TitleSelector and PriceSelector are read on detail pages.
	TitleSelector = "h1"
	PriceSelector = ".price"
)

// DetailFields lists every field read from a detail page, in output order.
// Label rules match the left-hand cell of the car details table.
var DetailFields = []models.FieldSpec{
	{Column: models.ColTitle, Kind: models.BySelector, Query: TitleSelector},
	{Column: models.ColPrice, Kind: models.BySelector, Query: PriceSelector},
	{Column: models.ColRegistrationDate, Kind: models.ByLabel, Query: "Registration Date"},
	{Column: models.ColDepreciation, Kind: models.ByLabel, Query: "Depreciation"},
	{Column: models.ColMileage, Kind: models.ByLabel, Query: "Mileage"},
	{Column: models.ColTransmission, Kind: models.ByLabel, Query: "Transmission"},
	{Column: models.ColEngineCap, Kind: models.ByLabel, Query: "Engine Cap"},
	{Column: models.ColRoadTax, Kind: models.ByLabel, Query: "Road Tax"},
	{Column: models.ColPower, Kind: models.ByLabel, Query: "Power"},
	{Column: models.ColTypeOfVehicle, Kind: models.ByLabel, Query: "Type of Vehicle"},
	{Column: models.ColCategory, Kind: models.ByLabel, Query: "Category"},
	{Column: models.ColCOE, Kind: models.ByLabel, Query: "COE"},
	{Column: models.ColNoOfOwners, Kind: models.ByLabel, Query: "No. of Owners"},
	{Column: models.ColAvailability, Kind: models.ByLabel, Query: "Availability"},
}
