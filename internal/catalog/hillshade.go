package catalog

import "strings"

const hillshadeSuffix = " hs"

// Hillshade finds the hillshade companion of active among the products of
// its own flight: a product whose type is active's type followed by " HS"
// (case-insensitive). It returns nil when the flight is unknown, holds a
// single product, or has no match. The first match in list order wins.
func Hillshade(active DataProduct, flights []Flight) *DataProduct {
	name := strings.ToLower(active.DataType)
	var flight *Flight
	for i := range flights {
		if flights[i].ID == active.FlightID {
			flight = &flights[i]
			break
		}
	}
	if flight == nil || len(flight.DataProducts) <= 1 {
		return nil
	}
	for _, dp := range flight.DataProducts {
		parts := strings.Split(strings.ToLower(dp.DataType), hillshadeSuffix)
		if len(parts) > 1 && parts[0] == name {
			match := dp
			return &match
		}
	}
	return nil
}
