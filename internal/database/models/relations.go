package models

// DeletePolicy decides what happens to dependent rows when their parent is deleted
type DeletePolicy int

const (
	// Cascade deletes the dependent rows together with the parent
	Cascade DeletePolicy = iota
	// Restrict blocks the delete while dependent rows exist
	Restrict
	// SetNull clears the reference on the dependent rows
	SetNull
)

func (p DeletePolicy) String() string {
	switch p {
	case Cascade:
		return "cascade"
	case Restrict:
		return "restrict"
	case SetNull:
		return "set-null"
	}
	return "unknown"
}

// Relation is one foreign-key edge of the entity graph, seen from the parent.
// ForeignKey is a column of Child referencing Parent.id, unless Inverse is set:
// then ForeignKey is a column of Parent referencing Child.id.
type Relation struct {
	Parent     string
	Child      string
	ForeignKey string
	OnDelete   DeletePolicy
	Inverse    bool
}

// Relations is the delete contract of the schema. Deletes walk it child-first.
var Relations = []Relation{
	{Parent: "companies", Child: "products", ForeignKey: "company_id", OnDelete: Cascade},
	{Parent: "companies", Child: "users", ForeignKey: "company_id", OnDelete: SetNull},
	{Parent: "companies", Child: "company_matches", ForeignKey: "company_id", OnDelete: Cascade},
	{Parent: "companies", Child: "locations", ForeignKey: "location_id", OnDelete: Cascade, Inverse: true},
	{Parent: "locations", Child: "companies", ForeignKey: "location_id", OnDelete: SetNull},
	{Parent: "products", Child: "materials", ForeignKey: "product_id", OnDelete: Restrict},
	{Parent: "products", Child: "matches", ForeignKey: "product_id", OnDelete: Cascade},
	{Parent: "matches", Child: "company_matches", ForeignKey: "match_id", OnDelete: Cascade},
	{Parent: "matches", Child: "user_matches", ForeignKey: "match_id", OnDelete: Cascade},
	{Parent: "users", Child: "user_matches", ForeignKey: "user_id", OnDelete: Cascade},
}

// RelationsOf returns the edges leaving table, restrict edges first so that a blocked
// delete fails before anything is touched.
func RelationsOf(table string) []Relation {
	var restrict, rest []Relation
	for _, rel := range Relations {
		if rel.Parent != table {
			continue
		}
		if rel.OnDelete == Restrict && !rel.Inverse {
			restrict = append(restrict, rel)
		} else {
			rest = append(rest, rel)
		}
	}
	return append(restrict, rest...)
}

// HasDependents reports whether deleting rows of table has to look at other tables
func HasDependents(table string) bool {
	for _, rel := range Relations {
		if rel.Parent == table {
			return true
		}
	}
	return false
}

var entityNames = map[string]string{
	"companies":       "company",
	"locations":       "location",
	"products":        "product",
	"materials":       "material",
	"matches":         "match",
	"company_matches": "company match",
	"user_matches":    "user match",
	"users":           "user",
}

// EntityName returns the singular name used in errors for a table
func EntityName(table string) string {
	if name, ok := entityNames[table]; ok {
		return name
	}
	return table
}

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{
		&Location{},
		&Company{},
		&User{},
		&Product{},
		&Material{},
		&Match{},
		&CompanyMatch{},
		&UserMatch{},
	}
}
