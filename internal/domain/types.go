package domain

type MenuItem struct {
	Name        string `yaml:"name" json:"name"`
	Price       string `yaml:"price" json:"price"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"image" json:"image"`
}

// MenuCategory groups menu items under a tab. Key is the value carried by the
// tab's data-category attribute.
type MenuCategory struct {
	Key   string     `yaml:"key" json:"key"`
	Label string     `yaml:"label" json:"label"`
	Items []MenuItem `yaml:"items" json:"items"`
}

type CelebrityVisit struct {
	Name      string `yaml:"name" json:"name"`
	VisitDate string `yaml:"visit_date" json:"visit_date"`
	ImageURL  string `yaml:"image" json:"image"`
	Story     string `yaml:"story" json:"story"`
}

type Testimonial struct {
	AuthorName string `yaml:"author" json:"author"`
	Date       string `yaml:"date" json:"date"`
	Rating     int    `yaml:"rating" json:"rating"`
	ImageURL   string `yaml:"image" json:"image"`
	Text       string `yaml:"text" json:"text"`
}

type StaffMember struct {
	Name        string `yaml:"name" json:"name"`
	Position    string `yaml:"position" json:"position"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"image" json:"image"`
}

type OpeningHours struct {
	Days  string `yaml:"days" json:"days"`
	Hours string `yaml:"hours" json:"hours"`
}

// PartySize values offered by the guests select.
var PartySizes = []string{"1", "2", "3", "4", "5", "6+"}

// SeatingPreferences values offered by the booth select. The first entry is
// the default.
var SeatingPreferences = []string{"any", "booth", "counter", "patio"}

// ReservationRequest is built from a single form submission. It only lives
// long enough to populate the confirmation view.
type ReservationRequest struct {
	Name              string
	Email             string
	Date              string
	Time              string
	PartySize         string
	SeatingPreference string
	Occasion          string
	SpecialRequests   string
}
