package schema

// ContainerLinkTable represents the 'catalog.containerlink' external-id table
type ContainerLinkTable struct {
	Table       string
	ContainerID string
	SourceID    string
	Scope       string
	Value       string
}

// ContainerLink is the schema definition for catalog.containerlink
var ContainerLink = ContainerLinkTable{
	Table:       "catalog.containerlink",
	ContainerID: "containerid",
	SourceID:    "sourceid",
	Scope:       "scope",
	Value:       "value",
}
