package schema

// WorkTable represents the 'catalog.work' table
type WorkTable struct {
	Table         string
	ID            string
	Key           string
	TypeID        string
	ContainerID   string
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
	ContainerX    string
	FirstPage     string
	LastPage      string
}

// Work is the schema definition for catalog.work
var Work = WorkTable{
	Table:         "catalog.work",
	ID:            "id",
	Key:           "key",
	TypeID:        "typeid",
	ContainerID:   "containerid",
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
	ContainerX:    "containerx",
	FirstPage:     "firstpage",
	LastPage:      "lastpage",
}
