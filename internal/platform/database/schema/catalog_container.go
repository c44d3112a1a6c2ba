package schema

// ContainerTable represents the 'catalog.container' table
type ContainerTable struct {
	Table         string
	ID            string
	Key           string
	TypeID        string
	Title         string
	TitleX        string
	Language      string
	Edition       string
	Publisher     string
	Number        string
	YearPub       string
	YearPub2      string
	PlacePub      string
	Location      string
	AccessDate    string
	Note          string
	Datation      string
	DatationValue string
}

// Container is the schema definition for catalog.container
var Container = ContainerTable{
	Table:         "catalog.container",
	ID:            "id",
	Key:           "key",
	TypeID:        "typeid",
	Title:         "title",
	TitleX:        "titlex",
	Language:      "language",
	Edition:       "edition",
	Publisher:     "publisher",
	Number:        "number",
	YearPub:       "yearpub",
	YearPub2:      "yearpub2",
	PlacePub:      "placepub",
	Location:      "location",
	AccessDate:    "accessdate",
	Note:          "note",
	Datation:      "datation",
	DatationValue: "datationvalue",
}
