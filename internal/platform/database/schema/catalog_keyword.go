package schema

// KeywordTable represents the 'catalog.keyword' table.
// The (language, value) pair carries a unique constraint.
type KeywordTable struct {
	Table    string
	ID       string
	Language string
	Value    string
	ValueX   string
}

// Keyword is the schema definition for catalog.keyword
var Keyword = KeywordTable{
	Table:    "catalog.keyword",
	ID:       "id",
	Language: "language",
	Value:    "value",
	ValueX:   "valuex",
}
