package military

// Category groups ranks, officers and enlisted personnel for instance.
type Category struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

// Rank is a military grade within a category.
type Rank struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
	CategoryID    int64
}
