package domain

// Route is the answer to a path query.
type Route struct {
	// Stations are the stations visited, from source to target.
	Stations []Station

	// Distance is the total track length travelled.
	Distance int

	// Surcharge is the highest surcharge among the lines ridden.
	Surcharge int

	// Fare is the final fare after distance tiers, surcharge and discounts.
	Fare int
}

// PathOptions tunes a path query.
type PathOptions struct {
	// Age of the rider in years, used for fare discounts. Zero means unknown
	// and is charged the adult fare.
	Age int
}
