package util

import "time"

var saoPauloLocation *time.Location

func init() {
	var err error
	saoPauloLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		saoPauloLocation = time.FixedZone("BRT", -3*60*60)
	}
}

func Location() *time.Location {
	return saoPauloLocation
}

// FormatDateBR renders a date the way the portal shows deadlines (dd/mm/aaaa).
func FormatDateBR(t time.Time) string {
	return t.In(saoPauloLocation).Format("02/01/2006")
}

func FormatDateTimeBR(t time.Time) string {
	return t.In(saoPauloLocation).Format("02/01/2006 15:04")
}
