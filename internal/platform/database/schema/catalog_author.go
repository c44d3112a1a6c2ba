package schema

// AuthorTable represents the 'catalog.author' table
type AuthorTable struct {
	Table  string
	ID     string
	First  string
	Last   string
	Suffix string
	LastX  string
}

// Author is the schema definition for catalog.author
var Author = AuthorTable{
	Table:  "catalog.author",
	ID:     "id",
	First:  "first",
	Last:   "last",
	Suffix: "suffix",
	LastX:  "lastx",
}
