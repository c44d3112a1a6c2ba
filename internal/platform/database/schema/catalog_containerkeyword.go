package schema

// ContainerKeywordTable represents the 'catalog.containerkeyword' junction table
type ContainerKeywordTable struct {
	Table       string
	ContainerID string
	KeywordID   string
}

// ContainerKeyword is the schema definition for catalog.containerkeyword
var ContainerKeyword = ContainerKeywordTable{
	Table:       "catalog.containerkeyword",
	ContainerID: "containerid",
	KeywordID:   "keywordid",
}
