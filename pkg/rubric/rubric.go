package rubric

// Rubric is a budget classification entry below a Domain.
type Rubric struct {
	ID            int64
	Code          string
	DesignationAr string
	DesignationEn string
	DesignationFr string
	DomainID      int64
}
