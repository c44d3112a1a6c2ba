package schema

// WorkAuthorTable represents the 'catalog.workauthor' junction table
type WorkAuthorTable struct {
	Table    string
	WorkID   string
	AuthorID string
	Role     string
	Ordinal  string
}

// WorkAuthor is the schema definition for catalog.workauthor
var WorkAuthor = WorkAuthorTable{
	Table:    "catalog.workauthor",
	WorkID:   "workid",
	AuthorID: "authorid",
	Role:     "role",
	Ordinal:  "ordinal",
}
