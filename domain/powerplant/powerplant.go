package powerplant

// FuelCategory is the coarse fuel taxonomy used for the generation mix.
type FuelCategory string

const (
	Renewable    FuelCategory = "renewable"
	NonRenewable FuelCategory = "non_renewable"
	Nuclear      FuelCategory = "nuclear"
	Other        FuelCategory = "other"
	Unknown      FuelCategory = "unknown"
)

// Categories are the four named categories that make up total generation.
var Categories = []FuelCategory{Renewable, NonRenewable, Nuclear, Other}

// AllCategories also includes Unknown.
var AllCategories = []FuelCategory{Renewable, NonRenewable, Nuclear, Other, Unknown}

// Plant is one row of the raw dataset.
type Plant struct {
	ID                 string
	Country            string
	Name               string
	PrimaryFuel        string       // raw label, normalized once classified
	Fuel               FuelCategory // empty until classified
	CapacityMW         float64
	YearOfCapacityData *int
	// Cells holds every other source column by header name, values verbatim.
	Cells map[string]string
}

// Key returns the identifying tuple repeated on every long-format row of the plant.
func (p Plant) Key() Key {
	return Key{
		PlantID:     p.ID,
		Country:     p.Country,
		Name:        p.Name,
		PrimaryFuel: p.PrimaryFuel,
		Fuel:        p.Fuel,
		CapacityMW:  p.CapacityMW,
	}
}

// Key identifies a plant in long-format tables. It is comparable and used as a join key.
type Key struct {
	PlantID     string
	Country     string
	Name        string
	PrimaryFuel string
	Fuel        FuelCategory
	CapacityMW  float64
}

// SeriesPoint is one (plant, year) value of a single generation series.
type SeriesPoint struct {
	Key
	Year  int
	Value *float64 // GWh, nil when the source cell was empty
}

// GenerationRecord is the merged long-format row.
type GenerationRecord struct {
	Key
	Year       int
	Actual     *float64
	Estimated  *float64
	Generation *float64 // Actual, else Estimated, else nil
}
