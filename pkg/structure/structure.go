package structure

// StructureType labels an organizational unit (command, directorate,
// regiment...).
type StructureType struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

// Structure is an organizational unit. Units form a tree through ParentID;
// root units have a nil parent. Uid is the stable external identifier used
// by item distributions.
type Structure struct {
	ID            int64
	Uid           string
	DesignationAr string
	DesignationEn string
	DesignationFr string
	Abbreviation  string
	TypeID        int64
	ParentID      *int64
}

// IsRoot reports whether the structure has no parent.
func (s Structure) IsRoot() bool {
	return s.ParentID == nil
}
