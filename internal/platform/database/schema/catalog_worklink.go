package schema

// WorkLinkTable represents the 'catalog.worklink' external-id table
type WorkLinkTable struct {
	Table    string
	WorkID   string
	SourceID string
	Scope    string
	Value    string
}

// WorkLink is the schema definition for catalog.worklink
var WorkLink = WorkLinkTable{
	Table:    "catalog.worklink",
	WorkID:   "workid",
	SourceID: "sourceid",
	Scope:    "scope",
	Value:    "value",
}
