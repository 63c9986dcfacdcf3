package render

// Column maps one table header to the resource field it reads.
type Column struct {
	Header string
	Field  string
}

// specs maps a resource kind to its column layout. Unknown kinds fall
// back to inference from the first item's keys.
var specs = map[string][]Column{}

// Register installs the tabular column layout for a resource kind.
// Registration happens at init time; the table is not mutated afterwards.
func Register(kind string, columns []Column) {
	specs[kind] = columns
}

func columnsFor(kind string) ([]Column, bool) {
	cols, ok := specs[kind]
	return cols, ok
}

func init() {
	Register("sources", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Slug", "slug"},
		{"Enabled", "enabled"},
	})
	Register("destinations", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Enabled", "enabled"},
		{"Source ID", "sourceId"},
	})
	Register("warehouses", []Column{
		{"ID", "id"},
		{"Workspace ID", "workspaceId"},
		{"Enabled", "enabled"},
	})
	Register("spaces", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Slug", "slug"},
	})
	Register("audiences", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Key", "key"},
		{"Enabled", "enabled"},
	})
	Register("tracking-plans", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Type", "type"},
		{"Updated At", "updatedAt"},
	})
	Register("functions", []Column{
		{"ID", "id"},
		{"Display Name", "displayName"},
		{"Resource Type", "resourceType"},
	})
	Register("users", []Column{
		{"ID", "id"},
		{"Name", "name"},
		{"Email", "email"},
	})
}
