package models

// Location is the address of exactly one Company. Coordinates are kept as text.
type Location struct {
	BaseModel
	Country    string `json:"country" gorm:"size:100"`
	Region     string `json:"region" gorm:"size:100"`
	City       string `json:"city" gorm:"size:100"`
	Address    string `json:"address" gorm:"size:255"`
	PostalCode string `json:"postal_code" gorm:"size:20"`
	Latitude   string `json:"latitude" gorm:"size:32"`
	Longitude  string `json:"longitude" gorm:"size:32"`
}

// TableName returns the table name for Location
func (Location) TableName() string {
	return "locations"
}
