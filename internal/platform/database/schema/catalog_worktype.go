package schema

// WorkTypeTable represents the 'catalog.worktype' table.
// The id is a caller-chosen short code (e.g. "book") and the primary key.
type WorkTypeTable struct {
	Table string
	ID    string
	Name  string
}

// WorkType is the schema definition for catalog.worktype
var WorkType = WorkTypeTable{
	Table: "catalog.worktype",
	ID:    "id",
	Name:  "name",
}
