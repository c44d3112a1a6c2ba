package schema

// WorkKeywordTable represents the 'catalog.workkeyword' junction table
type WorkKeywordTable struct {
	Table     string
	WorkID    string
	KeywordID string
}

// WorkKeyword is the schema definition for catalog.workkeyword
var WorkKeyword = WorkKeywordTable{
	Table:     "catalog.workkeyword",
	WorkID:    "workid",
	KeywordID: "keywordid",
}
