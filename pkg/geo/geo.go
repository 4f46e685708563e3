package geo

// Country is identified by its ISO-style code in addition to the id.
type Country struct {
	ID            int64
	Code          string
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

// State is an administrative division of a country (wilaya, province).
type State struct {
	ID            int64
	Code          string
	DesignationAr string
	DesignationEn string
	DesignationFr string
	CountryID     int64
}

// Locality is a town or commune within a state.
type Locality struct {
	ID            int64
	PostalCode    string
	DesignationAr string
	DesignationEn string
	DesignationFr string
	StateID       int64
}
