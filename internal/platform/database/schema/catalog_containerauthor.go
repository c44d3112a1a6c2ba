package schema

// ContainerAuthorTable represents the 'catalog.containerauthor' junction table
type ContainerAuthorTable struct {
	Table       string
	ContainerID string
	AuthorID    string
	Role        string
	Ordinal     string
}

// ContainerAuthor is the schema definition for catalog.containerauthor
var ContainerAuthor = ContainerAuthorTable{
	Table:       "catalog.containerauthor",
	ContainerID: "containerid",
	AuthorID:    "authorid",
	Role:        "role",
	Ordinal:     "ordinal",
}
